package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Empty the clipboard",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, _ []string) error {
			cb, log, err := openClipboard(v, "warn")
			if err != nil {
				return err
			}
			if err := cb.Clear(); err != nil {
				return fmt.Errorf("clear: %w", err)
			}
			log.Info("clipboard cleared")
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}
