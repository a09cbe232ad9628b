package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/danmuck/bertlv/internal/observability"
)

const (
	EnvLogLevel     = "BERTLV_LOG_LEVEL"
	EnvLogTimestamp = "BERTLV_LOG_TIMESTAMP"
	EnvLogNoColor   = "BERTLV_LOG_NOCOLOR"
	EnvLogJSON      = "BERTLV_LOG_JSON"
)

const appName = "bertlv"

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime, "")
}

func ConfigureTests() {
	Configure(ProfileTest, "")
}

// Configure installs the global logger once per process. level, when
// non-empty, overrides the profile default; the environment overrides both.
func Configure(profile Profile, level string) {
	configureOnce.Do(func() {
		opts := defaultOptions(profile)
		if lvl, ok := ParseLevel(level); ok {
			opts.Level = lvl
		}
		applyEnvOverrides(&opts)
		observability.InitLogger(appName, opts)
	})
}

func defaultOptions(profile Profile) observability.LoggerOptions {
	switch profile {
	case ProfileTest:
		return observability.LoggerOptions{Level: zerolog.DebugLevel, Timestamp: false}
	default:
		return observability.LoggerOptions{Level: zerolog.InfoLevel, Timestamp: true}
	}
}

func applyEnvOverrides(opts *observability.LoggerOptions) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		opts.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		opts.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		opts.NoColor = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogJSON)); ok {
		opts.JSON = v
	}
}

// ParseLevel maps a level name to a zerolog level. ok is false for empty
// or unrecognized input.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none", "inactive":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
