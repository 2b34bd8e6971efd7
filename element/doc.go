// Package element turns a WordprocessingML node tree into simplified
// values.
//
// Each yielded node becomes an Element of a fixed kind. Elements never
// hold references to their parents. Whatever context they need while
// serializing arrives explicitly: the conversion Context, and a Cursor
// positioned just after the element among its siblings.
package element
