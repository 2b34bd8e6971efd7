package element

import (
	"github.com/blwarren/simplifydocx/diag"
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/simple"
)

var documentTag = node.W("document")

// Reference is a node that pulls in another part by relationship id:
// w:altChunk, w:subDoc and w:contentPart.
type Reference struct {
	n   *node.Node
	typ string
}

func (r *Reference) Kind() string {
	switch r.typ {
	case "subDoc":
		return KindSubDoc
	case "contentPart":
		return KindContentPart
	}
	return KindAltChunk
}

func (r *Reference) Node() *node.Node { return r.n }

// Serialize converts the referenced part's document and wraps it. A
// reference that cannot be followed yields a null VALUE and a warning.
func (r *Reference) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	out := simple.New(r.typ, nil)

	id, ok := r.n.Attribute(rID)
	if !ok {
		ctx.warn(diag.UnresolvedReference, r.n, "reference has no r:id")
		return out, nil
	}
	if ctx.Source == nil {
		ctx.warn(diag.UnresolvedReference, r.n, "no source to resolve %s", id)
		return out, nil
	}
	part, err := ctx.Source.Related(id)
	if err != nil {
		ctx.warn(diag.UnresolvedReference, r.n, "resolving %s: %v", id, err)
		return out, nil
	}
	if ctx.isOpen(part) {
		ctx.warn(diag.UnresolvedReference, r.n, "reference %s re-enters a part that is being converted", id)
		return out, nil
	}
	if len(ctx.openSources()) > MaxReferenceDepth {
		ctx.warn(diag.UnresolvedReference, r.n, "reference %s nests deeper than %d parts", id, MaxReferenceDepth)
		return out, nil
	}
	root := part.Root()
	if root == nil || root.Name != documentTag {
		ctx.warn(diag.UnresolvedReference, r.n, "part %s is not a document", id)
		return out, nil
	}

	doc, err := NewDocument(root).Serialize(ctx.WithSource(part), nil)
	if err != nil {
		return nil, err
	}
	out.Value = doc
	return out, nil
}
