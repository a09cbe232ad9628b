package observability

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/danmuck/bertlv/internal/protocol/ber"
	"github.com/danmuck/bertlv/internal/protocol/compress"
)

const (
	OpEncode = "encode"
	OpDecode = "decode"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	codecOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bertlv",
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Top-level encode/decode calls by result.",
		},
		[]string{"op", "result"},
	)
	codecBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bertlv",
			Subsystem: "codec",
			Name:      "bytes_total",
			Help:      "Encoded bytes produced or consumed.",
		},
		[]string{"op"},
	)
	codecErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bertlv",
			Subsystem: "codec",
			Name:      "errors_total",
			Help:      "Codec failures by reason.",
		},
		[]string{"op", "reason"},
	)
	compressionRatio = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bertlv",
			Subsystem: "frame",
			Name:      "compression_ratio",
			Help:      "Wire payload size divided by encoded size.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 1.25},
		},
		[]string{"codec"},
	)
)

// Registry is the private registry holding codec metrics.
func Registry() *prometheus.Registry {
	RegisterMetrics()
	return registry
}

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(codecOps, codecBytes, codecErrors, compressionRatio)
	})
}

// Gather snapshots every registered metric family.
func Gather() ([]*dto.MetricFamily, error) {
	return Registry().Gather()
}

func RecordEncode(n int, err error) {
	record(OpEncode, n, err)
}

func RecordDecode(n int, err error) {
	record(OpDecode, n, err)
}

func RecordCompression(codec string, raw, wire int) {
	RegisterMetrics()
	if raw == 0 {
		return
	}
	compressionRatio.WithLabelValues(codec).Observe(float64(wire) / float64(raw))
}

func record(op string, n int, err error) {
	RegisterMetrics()
	if err != nil {
		codecOps.WithLabelValues(op, "error").Inc()
		codecErrors.WithLabelValues(op, ErrorReason(err)).Inc()
		return
	}
	codecOps.WithLabelValues(op, "ok").Inc()
	codecBytes.WithLabelValues(op).Add(float64(n))
}

// ErrorReason maps codec errors to stable label values.
func ErrorReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ber.ErrTruncated):
		return "truncated"
	case errors.Is(err, ber.ErrUnknownTag):
		return "unknown_tag"
	case errors.Is(err, ber.ErrInvalidText):
		return "invalid_text"
	case errors.Is(err, ber.ErrUnsupportedKind):
		return "unsupported_kind"
	case errors.Is(err, ber.ErrLengthOverflow):
		return "length_overflow"
	case errors.Is(err, ber.ErrDepthExceeded):
		return "depth_exceeded"
	case errors.Is(err, ber.ErrTrailingBytes):
		return "trailing_bytes"
	case errors.Is(err, compress.ErrTooLarge):
		return "too_large"
	default:
		return "other"
	}
}
