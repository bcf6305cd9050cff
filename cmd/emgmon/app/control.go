package app

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/johannasoldis1/EMG-ANR/internal/session"
)

// startControl reads operator commands from stdin. Supported commands:
// record, stop, status, quit. The returned channel closes when the
// operator quits or stdin is exhausted.
func startControl(ctx context.Context, sess *session.Session, logger *slog.Logger) <-chan struct{} {
	quit := make(chan struct{})

	go func() {
		defer close(quit)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
			case "record":
				sess.Record()

			case "stop":
				if artifact := sess.StopAndExport(); artifact != "" {
					logger.Info("export artifact ready", slog.Int("rows", strings.Count(artifact, "\n")-2))
				}

			case "status":
				logger.Info("session status",
					slog.Bool("recording", sess.IsRecording()),
					slog.Int("live", len(sess.Values())),
					slog.Int("shortTermRMS", len(sess.ShortTermRMS())),
					slog.Int("mediumTermRMS", len(sess.MediumTermRMS())),
					slog.Int("maxRMS", len(sess.MaxRMS())))

			case "quit", "exit":
				return

			case "":

			default:
				logger.Warn("unknown command, expected one of: record, stop, status, quit",
					slog.String("command", scanner.Text()))
			}
		}
	}()

	return quit
}
