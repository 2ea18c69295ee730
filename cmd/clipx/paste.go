package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/xclipboard/clip"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the clipboard to stdout (like pbpaste)",
		Long: `Writes the clipboard contents to stdout.

Without --format the first available format is printed. If the clipboard is
empty, or does not hold the requested format, nothing is printed (exit 0).
To retrieve an image:

  clipx paste --format image > screenshot.png`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			cb, _, err := openClipboard(v, "warn")
			if err != nil {
				return err
			}
			return runPaste(cb, cmd.OutOrStdout(), v.GetString("format"))
		},
	}

	cmd.Flags().String("format", "", "format to print: text|html|rtf|image (default: first available)")
	addCommonFlags(cmd)

	return cmd
}

func runPaste(cb *clip.Clipboard, out io.Writer, formatStr string) error {
	format, ok, err := formatFlag(formatStr)
	if err != nil {
		return err
	}

	var content *clip.Content
	if ok {
		content, err = cb.GetFormat(format)
	} else {
		content, err = cb.Get()
	}
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	// Requested format not present: exit 0, print nothing (pbpaste behaviour).
	if content == nil {
		return nil
	}
	_, err = out.Write(content.Bytes())
	return err
}
