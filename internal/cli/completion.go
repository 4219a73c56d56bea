package cli

import (
	"github.com/spf13/cobra"
)

// completionShells lists the shells veela can generate completions for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Completion prints a completion script for bash, zsh, fish or powershell.
Besides subcommands and flags, the scripts complete registry formats
(--format ts|json) and font directories for encode.`,
		Example: `  source <(veela completion bash)
  veela completion zsh > "${fpath[1]}/_veela"
  veela completion fish > ~/.config/fish/completions/veela.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// formatCompletion completes registry format names.
func formatCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"ts\tTypeScript module", "json\tJSON object"}, cobra.ShellCompDirectiveNoFileComp
}

// dirCompletion restricts completion to directories.
func dirCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}
