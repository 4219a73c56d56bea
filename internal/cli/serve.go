package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/veela/pkg/loader"
	"github.com/matzehuels/veela/pkg/registry"
	"github.com/matzehuels/veela/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <registry>",
		Short: "Serve registry fonts as a stylesheet",
		Long: `Serve loads every font of a generated registry into an in-memory font set
and serves it over HTTP:

  GET /fonts.css   @font-face rules for the loaded fonts
  GET /blob/{id}   font bytes
  GET /registry    registry metadata
  GET /healthz     liveness probe
  GET /version     build information

Fonts that fail to load are logged and skipped.`,
		Example: `  veela serve src/ts/font-registry.ts --addr :8080`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			provider := registry.NewMemo(registry.FileProvider{Path: args[0]})
			l := loader.New(loader.WithRegistry(provider), loader.WithLogger(c.Logger))

			if n := server.Preload(ctx, l, provider, c.Logger); n == 0 {
				printWarning("No fonts loaded from %s", args[0])
			}
			printInfo("Stylesheet at %s", StyleLink.Render("http://"+displayAddr(addr)+"/fonts.css"))

			return server.New(l, provider, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080" for printing.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
