package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the per-invocation metrics registry. A short-lived tool has no
// scrape endpoint, so metrics are written once to a node_exporter textfile
// when a path is configured.
type Registry struct {
	*prometheus.Registry
	textfile string
}

// New creates a registry with Go runtime collectors attached.
func New(textfile string) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return &Registry{Registry: reg, textfile: textfile}
}

// Enabled reports whether Flush will write anything.
func (r *Registry) Enabled() bool {
	return r != nil && r.textfile != ""
}

// Flush writes all gathered metrics to the textfile. No-op when disabled.
func (r *Registry) Flush() error {
	if !r.Enabled() {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
