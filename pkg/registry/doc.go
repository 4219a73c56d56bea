// Package registry reads and writes the generated font registry, the
// artifact that connects the build-time encoder to the run-time loader.
//
// # Format
//
// The default format is a TypeScript module that browser bundles import
// directly:
//
//	export const fontRegistry: Record<string, FontMetadata> = {
//	    'Inter-Bold': {
//	        base64: 'd09GMgABAAAA...',
//	        family: 'Inter',
//	        style: 'normal',
//	        weight: 700,
//	        compressed: false
//	    }
//	};
//
// The same mapping can be written as JSON for Go consumers. [Read] parses
// both formats back into entries.
//
// # Providers
//
// Loaders obtain the registry through a [Provider]. [Memo] wraps any
// provider so the registry is loaded at most once per session, with
// concurrent first callers sharing a single load.
package registry
