package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/xclipboard/clip"
	"go.klb.dev/xclipboard/internal/logging"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy stdin to the clipboard (like pbcopy)",
		Long: `Reads stdin and stores it on the clipboard, replacing its contents.

HTML and RTF may carry a plain-text fallback for programs that cannot read
the rich format:

  clipx copy --format html --fallback "hello" <<< "<b>hello</b>"
  clipx copy --format image < screenshot.png`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			cb, log, err := openClipboard(v, "warn")
			if err != nil {
				return err
			}
			return runCopy(cb, log, cmd.InOrStdin(), v.GetString("format"), v.GetString("fallback"))
		},
	}

	f := cmd.Flags()
	f.String("format", "text", "format of the data being copied: text|html|rtf|image")
	f.String("fallback", "", "plain-text fallback stored alongside html or rtf")
	addCommonFlags(cmd)

	return cmd
}

func runCopy(cb *clip.Clipboard, log *slog.Logger, in io.Reader, formatStr, fallback string) error {
	format, ok, err := formatFlag(formatStr)
	if err != nil {
		return err
	}
	if !ok {
		format = clip.PlainText
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var content clip.Content
	switch format {
	case clip.Image:
		content = clip.NewImage(data)
	case clip.HTML:
		content = clip.NewHTML(string(data))
	case clip.RTF:
		content = clip.NewRTF(string(data))
	default:
		content = clip.NewText(string(data))
	}
	if fallback != "" && format != clip.HTML && format != clip.RTF {
		log.Warn("ignoring --fallback", "format", format.String())
	}

	if err := cb.Set(content, fallback); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	logging.LogContent(log, "copied", &content)
	return nil
}
