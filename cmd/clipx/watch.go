package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/xclipboard/clip"
	"go.klb.dev/xclipboard/internal/logging"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Log clipboard changes until interrupted",
		Long: `Polls the clipboard and logs every change. The contents present at
start-up are taken as the baseline and are not reported.

Use --log-level debug to include a short text preview with each change.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			cb, log, err := openClipboard(v, "info")
			if err != nil {
				return err
			}
			interval := v.GetDuration("interval")
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("watching clipboard", "backend", cb.Backend().Name(), "interval", interval)
			err = newWatcher(cb, log).run(ctx, interval)
			log.Info("watch stopped")
			return err
		},
	}

	cmd.Flags().Duration("interval", 500*time.Millisecond, "polling interval")
	addCommonFlags(cmd)

	return cmd
}

// watcher remembers the last clipboard generation it saw.
type watcher struct {
	cb     *clip.Clipboard
	log    *slog.Logger
	last   *clip.Content
	primed bool
}

func newWatcher(cb *clip.Clipboard, log *slog.Logger) *watcher {
	return &watcher{cb: cb, log: log}
}

func (w *watcher) run(ctx context.Context, interval time.Duration) error {
	if _, err := w.poll(); err != nil {
		w.log.Warn("clipboard read failed", "err", err)
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := w.poll(); err != nil {
				var te *clip.TimeoutError
				if errors.As(err, &te) {
					w.log.Debug("clipboard read timed out", "op", te.Op)
					continue
				}
				w.log.Warn("clipboard read failed", "err", err)
			}
		}
	}
}

// poll reads the clipboard once and reports whether it changed since the
// previous poll. The first successful poll only records the baseline.
func (w *watcher) poll() (bool, error) {
	c, err := w.cb.Get()
	if err != nil {
		return false, err
	}
	if !w.primed {
		w.primed, w.last = true, c
		return false, nil
	}
	if sameContent(w.last, c) {
		return false, nil
	}
	w.last = c

	formats, err := w.cb.AvailableFormats()
	if err != nil {
		w.log.Debug("listing formats failed", "err", err)
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	w.log.Info("available formats", "formats", names)
	logging.LogContent(w.log, "clipboard changed", c)
	return true, nil
}

func sameContent(a, b *clip.Content) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Format == b.Format && bytes.Equal(a.Bytes(), b.Bytes())
}
