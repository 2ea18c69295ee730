package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/xclipboard/clip"
	"go.klb.dev/xclipboard/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPX_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPX_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipx")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipx/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/clipx", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addCommonFlags adds the backend, config and logging flags every command
// shares.
func addCommonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("backend", clip.BackendAuto, "clipboard backend: "+strings.Join(clip.BackendNames, "|"))
	f.String("xclip-path", "xclip", "xclip binary name or path (Linux)")
	f.Duration("timeout", clip.DefaultTimeout, "timeout for each external clipboard command")
	f.String("config", "", "path to config file (overrides auto-discovery)")
	f.String("log-format", "auto", "log format: auto|text|json")
	f.String("log-level", "", "log level: debug|info|warn|error")
}

// resolveLogging sets up the global slog logger after flags are parsed.
// fallback is the level used when --log-level is empty.
func resolveLogging(formatStr, levelStr, fallback string) *slog.Logger {
	if levelStr == "" {
		levelStr = fallback
	}
	return logging.Setup(logging.ParseFormat(formatStr), logging.ParseLevel(levelStr))
}

// openClipboard configures logging and builds the clipboard described by v.
func openClipboard(v *viper.Viper, defaultLevel string) (*clip.Clipboard, *slog.Logger, error) {
	log := resolveLogging(v.GetString("log-format"), v.GetString("log-level"), defaultLevel)
	cb, err := clip.New(
		clip.WithBackendName(v.GetString("backend")),
		clip.WithXclipPath(v.GetString("xclip-path")),
		clip.WithTimeout(v.GetDuration("timeout")),
		clip.WithLogger(log),
	)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("clipboard backend", "name", cb.Backend().Name())
	return cb, log, nil
}

// formatFlag parses a --format value. An empty value yields ok == false.
func formatFlag(s string) (clip.Format, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	f, ok := clip.ParseFormat(s)
	if !ok {
		return 0, false, fmt.Errorf("unknown format %q (want text, html, rtf or image)", s)
	}
	return f, true, nil
}
