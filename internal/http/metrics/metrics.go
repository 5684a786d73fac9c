package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type Collector struct {
	requests uint64
	errors   uint64
	sweeps   uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) AddAutoRejections(n int) {
	if n > 0 {
		atomic.AddUint64(&c.sweeps, uint64(n))
	}
}

func (c *Collector) Snapshot() (uint64, uint64, uint64) {
	return atomic.LoadUint64(&c.requests), atomic.LoadUint64(&c.errors), atomic.LoadUint64(&c.sweeps)
}

type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var requests, errors, sweeps uint64
	if h.collector != nil {
		requests, errors, sweeps = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP talentdesk_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE talentdesk_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "talentdesk_requests_total %d\n", requests)
	_, _ = fmt.Fprintf(w, "# HELP talentdesk_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE talentdesk_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "talentdesk_errors_total %d\n", errors)
	_, _ = fmt.Fprintf(w, "# HELP talentdesk_auto_rejections_total Total number of sweep auto-rejections.\n")
	_, _ = fmt.Fprintf(w, "# TYPE talentdesk_auto_rejections_total counter\n")
	_, _ = fmt.Fprintf(w, "talentdesk_auto_rejections_total %d\n", sweeps)
}
