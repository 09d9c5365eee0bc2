package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootCmd runs the dashboard.
var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Live CPU, memory and GPU gauges in your terminal",
	Long: `sysmon shows CPU load, memory and accelerator usage as live gauges.

Text scales with the terminal size, and the theme can be flipped between
light and dark while it runs. Metrics come from this machine or, with
--host, from a remote machine over SSH.

Examples:
  sysmon
  sysmon --theme dark --interval 500ms
  sysmon --host gpu-box
  sysmon --plain | tee usage.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sysmon.

Examples:
  # Bash
  sysmon completion bash > /etc/bash_completion.d/sysmon

  # Zsh
  sysmon completion zsh > "${fpath[1]}/_sysmon"

  # Fish
  sysmon completion fish > ~/.config/fish/completions/sysmon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletion(out)
		}
	},
}

func init() {
	registerRuntimeFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().Bool("plain", false, "print one line per sample instead of the dashboard")

	rootCmd.AddCommand(completionCmd)
}

// registerRuntimeFlags adds the flags that override the config file.
// Only flags the user actually set are applied.
func registerRuntimeFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./.sysmon.yaml, then ~/.config/sysmon/config.yaml)")
	fs.Duration("interval", 0, "sampling interval (e.g. 500ms, 2s)")
	fs.String("theme", "", "initial theme: light or dark")
	fs.String("host", "", "sample a remote machine over SSH (alias, host or user@host:port)")
	fs.Bool("sync", false, "sample on the UI loop instead of a background worker")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes structured errors in their full what/why/fix form and
// anything else on one line. Errors already reported stay quiet.
func printError(w io.Writer, err error) {
	var silent errSilent
	if stderrors.As(err, &silent) {
		return
	}

	var smErr *errors.Error
	if stderrors.As(err, &smErr) {
		fmt.Fprint(w, smErr.Error())
		return
	}
	fmt.Fprintf(w, "%s %v\n", ui.SymbolFail, err)
}
