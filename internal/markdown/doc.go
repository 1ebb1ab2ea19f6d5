// Package markdown is the CommonMark front-end of the converter. It parses
// markdown with goldmark, splits front matter, and emits the same markup tree
// shape a Markdoc parser produces so documents can flow through the regular
// conversion pipeline.
package markdown
