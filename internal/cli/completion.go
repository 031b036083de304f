package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hxmidi/midimap/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for midimap.

Bash:
  $ source <(midimap completion bash)

Zsh:
  $ midimap completion zsh > "${fpath[1]}/_midimap"

Fish:
  $ midimap completion fish | source

PowerShell:
  PS> midimap completion powershell | Out-String | Invoke-Expression

Router arguments complete to .json files, --format and --type to their
accepted values.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeRouterFile offers .json files for the router argument.
func completeRouterFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeValues offers a fixed set of flag values.
func completeValues(valid map[string]bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(valid))
		for v := range valid {
			out = append(out, v)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

var (
	completeFormats = completeValues(pipeline.ValidFormats)
	completeKinds   = completeValues(pipeline.ValidKinds)
)
