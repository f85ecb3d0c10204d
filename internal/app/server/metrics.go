package server

import (
	"encoding/json"
	"io"

	"appraisal/internal/platform/metrics"
)

func writeMetrics(w io.Writer, collector *metrics.Collector) error {
	return json.NewEncoder(w).Encode(collector.Snapshot())
}
