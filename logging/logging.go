package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the global zerolog logger with a console sink and a
// rotating file sink under dir. An empty dir disables the file sink.
func Init(level string, dir string) {
	lv, err := zerolog.ParseLevel(level)
	if err != nil || lv == zerolog.NoLevel {
		lv = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lv)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	var w io.Writer = console
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			w = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
				Filename:   filepath.Join(dir, "wow_check.log"),
				MaxSize:    16, // megabytes
				MaxBackups: 8,
				MaxAge:     90, // days
				Compress:   true,
			})
		} else {
			log.Warn().Err(err).Str("dir", dir).Msg("log directory not writable, console only")
		}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
