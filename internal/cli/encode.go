package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/veela/pkg/encoder"
	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
	"github.com/matzehuels/veela/pkg/registry"
)

const (
	defaultFontDir = "fonts"
	defaultOutput  = "font-registry.ts"
)

// encodeOpts holds the encode command's flags.
type encodeOpts struct {
	output     string
	compress   bool
	config     string
	format     string
	family     string
	typeImport string
	noCache    bool
	redis      string
}

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	var opts encodeOpts

	cmd := &cobra.Command{
		Use:   "encode [font-dir]",
		Short: "Encode a font directory into a registry module",
		Long: `Encode scans a font directory for .woff2 and .woff files, derives family,
style and weight from each filename, and writes a registry module mapping a
key derived from the relative path to the base64-encoded font.

With --compress, fonts that are not already WOFF2 are gzipped first and
marked compressed. Settings may also come from a veela.toml file; flags
take precedence.`,
		Example: `  veela encode fonts -o src/ts/font-registry.ts
  veela encode fonts --compress --format json -o dist/fonts.json
  veela encode --config veela.toml`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: dirCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEncode(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "registry file to write")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "gzip fonts that are not already woff2")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ./veela.toml if present)")
	cmd.Flags().StringVar(&opts.format, "format", "", "registry format: ts or json (default: from output extension)")
	cmd.Flags().StringVar(&opts.family, "family", fontmeta.DefaultFamily, "default font family for filename parsing")
	cmd.Flags().StringVar(&opts.typeImport, "type-import", registry.DefaultTypeImport, "module the generated file imports FontMetadata from")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the encode cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "use a Redis encode cache at this address")
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion)

	return cmd
}

func (c *CLI) runEncode(cmd *cobra.Command, args []string, opts encodeOpts) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	cfg, err := loadEncodeConfig(opts.config)
	if err != nil {
		return err
	}

	fontDir := firstNonEmpty(cfg.FontDir, defaultFontDir)
	if len(args) > 0 {
		fontDir = args[0]
	}
	output := opts.output
	if !flags.Changed("output") && cfg.Output != "" {
		output = cfg.Output
	}
	compress := opts.compress || (!flags.Changed("compress") && cfg.Compress)
	family := opts.family
	if !flags.Changed("family") && cfg.Family != "" {
		family = cfg.Family
	}
	typeImport := opts.typeImport
	if !flags.Changed("type-import") && cfg.TypeImport != "" {
		typeImport = cfg.TypeImport
	}
	formatName := firstNonEmpty(opts.format, cfg.Format)
	var format registry.Format
	if formatName != "" {
		var ok bool
		if format, ok = registry.ParseFormat(formatName); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want ts or json)", formatName)
		}
	}

	store, keyer, err := c.newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer store.Close()

	prog := newProgress(c.Logger)
	res, err := encoder.New(encoder.Options{
		FontDir:    fontDir,
		Output:     output,
		Compress:   compress,
		Parser:     fontmeta.NewParser(family),
		Overrides:  cfg.Overrides(),
		Format:     format,
		TypeImport: typeImport,
		Cache:      store,
		Keyer:      keyer,
		Logger:     c.Logger,
	}).Encode(ctx)
	if err != nil {
		return err
	}

	if !res.Written {
		printWarning("No font files found in %s", fontDir)
		return nil
	}
	prog.done("Encoding complete")

	compressed := 0
	for _, e := range res.Entries {
		if e.Metadata.Compressed {
			compressed++
		}
	}
	printSuccess("Generated font registry")
	printFile(res.Output)
	fmt.Println(encodeStats(len(res.Entries), compressed, res.CacheHits))
	printNextStep("Inspect it", "veela inspect "+res.Output)
	return nil
}

// loadEncodeConfig reads path, or ./veela.toml when path is empty and the
// file exists. A missing default file yields an empty config.
func loadEncodeConfig(path string) (*encoder.Config, error) {
	if path == "" {
		if _, err := os.Stat(encoder.DefaultConfigFile); err != nil {
			return &encoder.Config{}, nil
		}
		path = encoder.DefaultConfigFile
	}
	return encoder.LoadConfig(path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
