// Package encoder turns a directory of font files into a font registry.
//
// The encoder scans a font directory for .woff2 and .woff files, derives
// family, style and weight from each filename, optionally gzips files that
// are not already WOFF2, base64-encodes the result and writes a registry
// module mapping a key derived from the relative path to the metadata.
//
// Files are processed sequentially in scan order. Any per-file failure
// aborts the run before anything is written, so a registry on disk is
// always complete. A directory without fonts is not an error: the run logs
// a warning and leaves the output untouched.
//
// Output is deterministic. Compression uses a fixed level and writes no
// file name or modification time into the gzip header, and the registry
// carries no timestamp, so re-encoding an unchanged directory produces
// byte-identical output.
package encoder
