// Package loader turns registry entries into active font faces.
//
// For each [fontmeta.Metadata] the loader decodes the base64 payload,
// decompresses it when the entry is marked compressed, materialises the
// bytes in a [resource.Store], binds a [document.FontFace] to the
// resulting URL, activates it and adds it to the document's
// [document.FontSet].
//
// Resource URLs and faces are cached by the composite key
// family-style-weight in an explicit [Cache]. Loading the same logical
// font twice returns the cached face; concurrent loads of one key are
// collapsed into a single materialisation.
//
// # Usage
//
//	l := loader.New(loader.WithRegistry(registry.FileProvider{Path: "font-registry.ts"}))
//	faces, err := l.LoadFontsByFamily(ctx, "Inter")
//	if err != nil {
//	    return err
//	}
//	fmt.Print(l.Fonts().CSS())
//
// # Errors
//
// Malformed base64 and corrupt compressed streams fail with DECODE_FAILED.
// A compressed entry with no decompressor configured fails with
// COMPRESSION_UNSUPPORTED rather than handing garbage to the font set.
// Rejected font bytes fail with FONT_ACTIVATION_FAILED, and registry
// failures propagate as REGISTRY_LOAD_FAILED. The loader never swallows an
// error; callers choose whether to warn and continue.
package loader
