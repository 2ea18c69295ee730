package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/xclipboard/clip"
)

func newFormatsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "formats",
		Short:   "List the formats currently on the clipboard",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			cb, _, err := openClipboard(v, "warn")
			if err != nil {
				return err
			}
			return runFormats(cb, cmd.OutOrStdout(), v.GetBool("json"))
		},
	}

	cmd.Flags().Bool("json", false, "print JSON instead of one format per line")
	addCommonFlags(cmd)

	return cmd
}

type formatInfo struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
}

func runFormats(cb *clip.Clipboard, out io.Writer, asJSON bool) error {
	formats, err := cb.AvailableFormats()
	if err != nil {
		return fmt.Errorf("formats: %w", err)
	}

	if asJSON {
		infos := make([]formatInfo, 0, len(formats))
		for _, f := range formats {
			infos = append(infos, formatInfo{Name: f.String(), MIME: f.MIME()})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	for _, f := range formats {
		if _, err := fmt.Fprintln(out, f.String()); err != nil {
			return err
		}
	}
	return nil
}
