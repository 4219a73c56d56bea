// Package document models the font-facing half of a browser document:
// font faces bound to resource URLs, and the document's active font set.
//
// A [FontFace] is constructed from a family name, a source URL, and CSS
// descriptors. [FontFace.Load] fetches the source bytes, identifies the
// container format and rejects malformed fonts, mirroring the CSS Font
// Loading API's FontFace.load(). Loaded faces are added to a [FontSet],
// which can render itself as an @font-face stylesheet.
//
// # Supported Formats
//
// WOFF2 and WOFF containers are validated structurally (signature, table
// count and declared length). TrueType and OpenType fonts are parsed with
// golang.org/x/image/font/sfnt and their glyph count recorded. Anything
// else is rejected.
package document
