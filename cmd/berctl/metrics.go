package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"

	"github.com/danmuck/bertlv/internal/observability"
)

// writeMetrics prints counter values and histogram counts, one sample per line.
func writeMetrics(w io.Writer) error {
	families, err := observability.Gather()
	if err != nil {
		return err
	}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			name, labels := fam.GetName(), formatLabels(m.GetLabel())
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s%s %g\n", name, labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s_count%s %d\n", name, labels, h.GetSampleCount())
				fmt.Fprintf(w, "%s_sum%s %g\n", name, labels, h.GetSampleSum())
			}
		}
	}
	return nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
