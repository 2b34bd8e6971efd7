package simplifydocx

import (
	"log/slog"

	"github.com/blwarren/simplifydocx/options"
)

// settings holds the configuration a Simplifier carries to a conversion.
type settings struct {
	options options.Options

	// Option keys that were set but are not known; each becomes an
	// unknown-option warning.
	unknown []string

	logger *slog.Logger
	trace  bool
}

// defaultSettings returns the documented option defaults.
func defaultSettings() settings {
	return settings{
		options: options.Defaults(),
	}
}

// clone creates a deep copy of settings.
func (s settings) clone() settings {
	newSettings := settings{
		options: s.options,
		logger:  s.logger,
		trace:   s.trace,
	}

	if s.unknown != nil {
		newSettings.unknown = make([]string, len(s.unknown))
		copy(newSettings.unknown, s.unknown)
	}

	return newSettings
}
