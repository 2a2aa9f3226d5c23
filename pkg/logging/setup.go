package logging

import (
	"io"
	"log/slog"
)

// Setup installs the default slog logger. Without debug, logs are dropped.
// With debug they go to the file at path; if it cannot be opened they go to
// fallback and the open error is returned alongside a nil closer.
func Setup(debug bool, path string, fallback io.Writer) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil, nil
	}

	lf, err := Open(path)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(fallback, &slog.HandlerOptions{Level: slog.LevelDebug})))
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return lf, nil
}
