// Package dispatch holds the tables that decide how each child tag is
// treated while walking a document tree, and the walker that applies them.
//
// A Definition maps tags to one of five treatments: yield an element,
// nest into another definition, ignore, warn, or skip a range of
// siblings. Definitions may extend other definitions. A Registry stores
// raw definitions and resolves the extends chains into flat lookup tables
// before any walk starts.
package dispatch
