package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/elizafairlady/layers/layerview"
	"github.com/elizafairlady/layers/ui/connect"
	"github.com/elizafairlady/layers/ui/proto"
	"github.com/elizafairlady/layers/ui/theme"
)

// Options configures the handler.
type Options struct {
	// Title is the document title, layerview.DefaultTitle when empty.
	Title string
	Theme *theme.Theme
	Log   logrus.FieldLogger
	// Gatherer, when set, is served on /metrics.
	Gatherer prometheus.Gatherer
}

// Handler serves the page for h:
//
//	GET  /         the rendered page
//	POST /actions  form field id: click on that node, then 303 to /
//	GET  /tree     the current tree in the text protocol
//	GET  /metrics  Prometheus metrics, if a gatherer is configured
func Handler(h *connect.Host, opts Options) http.Handler {
	if opts.Title == "" {
		opts.Title = layerview.DefaultTitle
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		templ.Handler(Page(opts.Title, h.Tree(), opts.Theme)).ServeHTTP(w, r)
	})
	mux.HandleFunc("POST "+actionPath, func(w http.ResponseWriter, r *http.Request) {
		id := r.PostFormValue("id")
		if err := h.HandleAction(proto.Click(id)); err != nil {
			opts.Log.WithError(err).WithField("id", id).Warn("action rejected")
			status := http.StatusInternalServerError
			if errors.Is(err, connect.ErrUnknownTarget) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		opts.Log.WithField("id", id).Debug("action")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	mux.HandleFunc("GET /tree", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(h.TreeText()))
	})
	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}
