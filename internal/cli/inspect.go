package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/loader"
	"github.com/matzehuels/veela/pkg/registry"
)

// inspectOpts holds the inspect command's flags.
type inspectOpts struct {
	format      string
	family      string
	load        bool
	interactive bool
}

// inspectRow is one registry entry as displayed by inspect.
type inspectRow struct {
	registry.Entry
	Size   int    // encoded payload size after base64 decoding
	Status string // activation result with --load
	Failed bool
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <registry>",
		Short: "List the fonts in a generated registry",
		Long: `Inspect reads a generated registry (TypeScript or JSON) and prints one row
per entry. With --load every entry is decoded, decompressed and activated
the way the runtime loader does it, and the outcome is reported per font.`,
		Example: `  veela inspect src/ts/font-registry.ts
  veela inspect dist/fonts.json --family InterDisplay --load
  veela inspect src/ts/font-registry.ts -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "registry format: ts or json (default: from extension)")
	cmd.Flags().StringVar(&opts.family, "family", "", "only show fonts of this family")
	cmd.Flags().BoolVar(&opts.load, "load", false, "activate every font and report the result")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse entries interactively")
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path string, opts inspectOpts) error {
	provider := registry.FileProvider{Path: path}
	if opts.format != "" {
		format, ok := registry.ParseFormat(opts.format)
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want ts or json)", opts.format)
		}
		provider.Format = format
	}

	rows, err := c.inspectRows(ctx, provider, opts)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		printWarning("No fonts in %s", path)
		return nil
	}

	if opts.interactive {
		return c.browse(rows)
	}

	fmt.Println(renderInspectTable(rows, opts.load))
	failed := 0
	for _, r := range rows {
		if r.Failed {
			failed++
		}
	}
	switch {
	case !opts.load:
		printInfo("%d fonts", len(rows))
	case failed > 0:
		return errors.New(errors.ErrCodeActivationFailed, "%d of %d fonts failed to load", failed, len(rows))
	default:
		printSuccess("All %d fonts loaded", len(rows))
	}
	return nil
}

func (c *CLI) inspectRows(ctx context.Context, p registry.Provider, opts inspectOpts) ([]inspectRow, error) {
	reg, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}

	var rows []inspectRow
	for _, e := range reg.Entries() {
		if opts.family != "" && e.Metadata.Family != opts.family {
			continue
		}
		size := base64.StdEncoding.DecodedLen(len(e.Metadata.Base64))
		if raw, err := base64.StdEncoding.DecodeString(e.Metadata.Base64); err == nil {
			size = len(raw)
		}
		rows = append(rows, inspectRow{Entry: e, Size: size})
	}

	if opts.load && len(rows) > 0 {
		sp := startSpinner(ctx, os.Stderr, fmt.Sprintf("Loading %d fonts...", len(rows)))
		c.loadRows(ctx, rows)
		sp.stop()
	}
	return rows, nil
}

// loadRows activates every row independently so one failure does not hide
// the others.
func (c *CLI) loadRows(ctx context.Context, rows []inspectRow) {
	l := loader.New(loader.WithLogger(c.Logger))
	for i := range rows {
		face, err := l.LoadFont(ctx, rows[i].Metadata)
		if err != nil {
			rows[i].Failed = true
			rows[i].Status = string(errors.GetCode(err))
			c.Logger.Debug("load failed", "key", rows[i].Key, "error", err)
			continue
		}
		info := face.Info()
		rows[i].Status = string(info.Format)
		if info.Glyphs > 0 {
			rows[i].Status += fmt.Sprintf(", %d glyphs", info.Glyphs)
		}
	}
}

func renderInspectTable(rows []inspectRow, withStatus bool) string {
	headers := []string{"Key", "Family", "Style", "Weight", "Compressed", "Size"}
	if withStatus {
		headers = append(headers, "Status")
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		d := r.Metadata.Descriptor()
		compressed := "no"
		if r.Metadata.Compressed {
			compressed = "gzip"
		}
		data[i] = []string{r.Key, d.Family, d.Style, d.Weight.String(), compressed, formatBytes(r.Size)}
		if withStatus {
			data[i] = append(data[i], r.Status)
		}
	}

	statusCol := len(headers) - 1
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if withStatus && col == statusCol && row < len(rows) {
				if rows[row].Failed {
					return base.Foreground(colorRed)
				}
				return base.Foreground(colorGreen)
			}
			if col == 0 {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorGray)
		}).
		Render()
}

// browse runs the interactive entry list and prints the selected entry.
func (c *CLI) browse(rows []inspectRow) error {
	final, err := tea.NewProgram(newFontListModel(rows)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(fontListModel)
	if !ok || m.selected == nil {
		return nil
	}

	r := m.selected
	d := r.Metadata.Descriptor()
	fmt.Println(StyleTitle.Render(r.Key))
	printKeyValue("Family", d.Family)
	printKeyValue("Style", d.Style)
	printKeyValue("Weight", d.Weight.String())
	printKeyValue("Compressed", fmt.Sprint(r.Metadata.Compressed))
	printKeyValue("Size", formatBytes(r.Size))
	printKeyValue("Cache key", r.Metadata.CacheKey())
	return nil
}
