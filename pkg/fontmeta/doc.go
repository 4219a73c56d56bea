// Package fontmeta defines the font descriptor exchanged between the
// build-time encoder and the run-time loader, and derives descriptors from
// font filenames.
//
// # Metadata
//
// A [Metadata] value carries one font face: its binary payload as base64
// text, the CSS family/style/weight triple, and whether the payload must be
// decompressed before use. Values are immutable data; the loader consumes
// them any number of times.
//
// # Weights
//
// CSS font weights come in three shapes, all represented by [Weight]:
//
//	fontmeta.Numeric(700)       // 700
//	fontmeta.Range(100, 900)    // "100 900" (variable fonts)
//	fontmeta.Keyword("normal")  // "normal"
//
// Numeric weights serialise as JSON/TOML numbers, the others as strings.
//
// # Filename conventions
//
// [Parser] maps filenames to descriptors without any I/O:
//
//	fontmeta.Parse("Inter-Bold.woff2")
//	// {Family: "Inter", Style: "normal", Weight: 700}
//	fontmeta.Parse("InterDisplay-Thin-Italic.woff2")
//	// {Family: "InterDisplay", Style: "italic", Weight: 100}
//	fontmeta.Parse("InterVariable-Italic.woff2")
//	// {Family: "InterVariable", Style: "italic", Weight: "100 900"}
//
// Filenames matching no convention fall back to the default family with
// normal style and the "normal" weight keyword. This is not an error.
package fontmeta
