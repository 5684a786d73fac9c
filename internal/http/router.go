package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"talentdesk/internal/http/handlers"
	"talentdesk/internal/http/metrics"
	httpmw "talentdesk/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler          *handlers.JobHandler
	CandidateHandler    *handlers.CandidateHandler
	ApplicationHandler  *handlers.ApplicationHandler
	ReportHandler       *handlers.ReportHandler
	NotificationHandler *handlers.NotificationHandler
	MetricsHandler      *metrics.Handler
	Metrics             *metrics.Collector
	Logger              *slog.Logger
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.ServeHTTP(w, req)
			return

		case req.Method == http.MethodPost && path == "/jobs":
			r.deps.JobHandler.Create(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/status"):
			r.deps.JobHandler.UpdateStatus(w, req)
			return
		case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Update(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return

		case req.Method == http.MethodPost && path == "/candidates":
			r.deps.CandidateHandler.Create(w, req)
			return
		case req.Method == http.MethodGet && path == "/candidates":
			r.deps.CandidateHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/candidates/"):
			r.deps.CandidateHandler.Get(w, req)
			return

		case req.Method == http.MethodPost && path == "/applications":
			r.deps.ApplicationHandler.Apply(w, req)
			return
		case req.Method == http.MethodGet && path == "/applications":
			r.deps.ApplicationHandler.List(w, req)
			return
		case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/stage"):
			r.deps.ApplicationHandler.UpdateStage(w, req)
			return
		case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
			r.deps.ApplicationHandler.SetStatus(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/confirmation"):
			r.deps.ApplicationHandler.RespondConfirmation(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/mail-ack"):
			r.deps.ApplicationHandler.AcknowledgeMail(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
			r.deps.ApplicationHandler.Get(w, req)
			return

		case req.Method == http.MethodGet && path == "/reports/pipeline":
			r.deps.ReportHandler.Pipeline(w, req)
			return
		case req.Method == http.MethodGet && path == "/reports/schedule":
			r.deps.ReportHandler.Schedule(w, req)
			return
		case req.Method == http.MethodGet && path == "/notifications":
			r.deps.NotificationHandler.List(w, req)
			return
		}

		http.NotFound(w, req)
	})
}
