// Package document models the editor document tree produced by the importer.
//
// A document is an ordered list of block nodes. Every element node carries a
// Type and a list of children; text runs have no Type and carry their text,
// a mark set and an optional link target. The JSON encoding matches the shape
// the editor consumes: elements as {"type":..., "children":[...]} and text
// runs as {"text":..., "bold":true}.
package document
