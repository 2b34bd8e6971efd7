package element

import (
	"regexp"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/blwarren/simplifydocx/options"
)

var (
	quotes = map[rune]rune{
		'\u2018': '\'', '\u2019': '\'', '\u201a': '\'', '\u201b': '\'',
		'\u201c': '"', '\u201d': '"',
	}
	// U+2000 through U+200A
	isSpace = func(r rune) bool { return r >= '\u2000' && r <= '\u200a' }
	// U+2010 through U+2015, and the no-break space
	isHyphen = func(r rune) bool { return (r >= '\u2010' && r <= '\u2015') || r == '\u00a0' }

	innerSpaces = regexp.MustCompile(`  +`)
)

func mapQuotes(r rune) rune {
	if q, ok := quotes[r]; ok {
		return q
	}
	return r
}

func mapSpaces(r rune) rune {
	if isSpace(r) {
		return ' '
	}
	return r
}

func mapHyphens(r rune) rune {
	if isHyphen(r) {
		return '-'
	}
	return r
}

// normalize applies the text options in their fixed order: quotes,
// spaces, hyphens, joiners, inner spaces, direction marks.
func normalize(s string, opts options.Options) string {
	s = apply(s, charTransforms(opts))
	if opts.FlattenInnerSpaces {
		s = innerSpaces.ReplaceAllString(s, " ")
	}
	return apply(s, markTransforms(opts))
}

func charTransforms(opts options.Options) []transform.Transformer {
	var ts []transform.Transformer
	if opts.DumbQuotes {
		ts = append(ts, runes.Map(mapQuotes))
	}
	if opts.DumbSpaces {
		ts = append(ts, runes.Map(mapSpaces))
	}
	if opts.DumbHyphens {
		ts = append(ts, runes.Map(mapHyphens))
	}
	if opts.IgnoreJoiners {
		ts = append(ts, runes.Remove(runes.Predicate(func(r rune) bool {
			return r == '\u200c' || r == '\u200d'
		})))
	}
	return ts
}

func markTransforms(opts options.Options) []transform.Transformer {
	var ts []transform.Transformer
	if opts.IgnoreLeftToRightMark {
		ts = append(ts, runes.Remove(runes.Predicate(func(r rune) bool { return r == '\u200e' })))
	}
	if opts.IgnoreRightToLeftMark {
		ts = append(ts, runes.Remove(runes.Predicate(func(r rune) bool { return r == '\u200f' })))
	}
	return ts
}

func apply(s string, ts []transform.Transformer) string {
	if len(ts) == 0 {
		return s
	}
	out, _, err := transform.String(transform.Chain(ts...), s)
	if err != nil {
		return s
	}
	return out
}
