// Layers shows the layer picker: a list of layers where selecting one
// shows its label and selecting it again hides it.
//
// The target is chosen by LAYERS_MODE:
//
//	term    full-screen terminal UI (default)
//	web     HTML page on LAYERS_ADDR, metrics on /metrics
//	script  action lines on stdin, tree snapshots on stdout
//
// Usage: layers
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/elizafairlady/layers/config"
	"github.com/elizafairlady/layers/layerview"
	"github.com/elizafairlady/layers/store"
	"github.com/elizafairlady/layers/ui"
	"github.com/elizafairlady/layers/ui/connect"
	"github.com/elizafairlady/layers/ui/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exit(err)
	}
	log, closer, err := config.NewLogger(cfg)
	if err != nil {
		config.Exit(err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("exit")
		stop()
		closer.Close()
		config.Exit(err)
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	mws := []store.Middleware{store.Logger(log)}
	var reg *prometheus.Registry
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		mws = append(mws, store.Metrics(reg))
	}
	st := store.New(store.Initial(), store.WithMiddleware(mws...))

	h := connect.New(st, layerview.Page(cfg.Title), connect.WithLogger(log))
	defer h.Close()

	opts := ui.Options{Log: log}
	log.WithField("mode", cfg.Mode).Info("starting")

	switch cfg.Mode {
	case config.ModeWeb:
		ln, err := net.Listen("tcp", cfg.Addr)
		if err != nil {
			return err
		}
		wopts := web.Options{Title: cfg.Title, Log: log}
		if reg != nil {
			wopts.Gatherer = reg
		}
		return ui.Serve(ctx, ln, web.Handler(h, wopts), opts)
	case config.ModeScript:
		return ui.RunScript(ctx, h, os.Stdin, os.Stdout)
	default:
		return ui.Run(ctx, h, opts)
	}
}
