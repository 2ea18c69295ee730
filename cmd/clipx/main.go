// clipx: read and write the system clipboard from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clipx",
		Short: "Cross-platform clipboard tool",
		Long: `clipx reads and writes the system clipboard as plain text, HTML,
RTF or PNG images. It uses xclip on Linux, NSPasteboard on macOS and the
Win32 clipboard on Windows.

Config file search order (first found wins):
  /etc/clipx/clipx.toml
  $HOME/.config/clipx/clipx.toml
  path supplied via --config

All flags can be set via CLIPX_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCopyCmd(),
		newPasteCmd(),
		newFormatsCmd(),
		newClearCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clipx %s\n", Version)
		},
	}
}
