package observability

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerOptions selects the log sink format.
type LoggerOptions struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	JSON      bool
	Out       io.Writer
}

// InitLogger builds the process logger and installs it as the zerolog
// global. Console output goes to stderr so stdout stays free for codec output.
func InitLogger(app string, opts LoggerOptions) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		noColor := opts.NoColor
		if f, ok := out.(*os.File); ok {
			if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
				noColor = true
			}
			if !noColor {
				out = colorable.NewColorable(f)
			}
		}
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(out).Level(opts.Level).With().Str("app", app)
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	logger := ctx.Logger()
	zerolog.SetGlobalLevel(opts.Level)
	log.Logger = logger
	return logger
}
