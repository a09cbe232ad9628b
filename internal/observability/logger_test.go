package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLoggerJSONSink(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	logger := InitLogger("bertlv-test", LoggerOptions{Level: zerolog.InfoLevel, JSON: true, Out: &buf})
	logger.Debug().Msg("dropped")
	log.Info().Str("k", "v").Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one json line, got %q: %v", buf.String(), err)
	}
	if entry["app"] != "bertlv-test" || entry["k"] != "v" || entry["message"] != "kept" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if _, ok := entry["time"]; ok {
		t.Fatalf("timestamp present without Timestamp option")
	}
}
