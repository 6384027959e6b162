package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/askrepo/askrepo/internal/config"
	"github.com/askrepo/askrepo/internal/tsbx"
)

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	Verbosity int
	JSON      bool
	EnvFile   string
}

// session bundles what a command needs to talk to the provisioning service.
type session struct {
	cfg      *config.Config
	timeouts *config.Timeouts
	log      logr.Logger
	client   *tsbx.Client
	metrics  *tsbx.Metrics
}

// logOutput is where diagnostics go. Tests replace it.
var logOutput io.Writer = os.Stderr

// newSession loads configuration and builds the client. When reg is not nil
// provisioning metrics are registered with it.
func newSession(opts *GlobalOptions, reg prometheus.Registerer) (*session, error) {
	log := newLogger(logOutput, opts.Verbosity)

	var envFiles []string
	if opts.EnvFile != "" {
		envFiles = append(envFiles, opts.EnvFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	timeouts := config.LoadTimeouts()
	log.V(1).Info("loaded configuration", "config", cfg.String(), "requestTimeout", timeouts.Request)

	var metrics *tsbx.Metrics
	if reg != nil {
		metrics = tsbx.NewMetrics(reg)
	}

	client, err := tsbx.NewClient(cfg.HostURL, cfg.AdminToken,
		tsbx.WithTimeout(timeouts.Request),
		tsbx.WithLogger(log),
		tsbx.WithMetrics(metrics),
	)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		timeouts: timeouts,
		log:      log,
		client:   client,
		metrics:  metrics,
	}, nil
}

// newLogger returns a logr.Logger writing to w: human readable on a
// terminal, one JSON object per line otherwise.
func newLogger(w io.Writer, verbosity int) logr.Logger {
	opts := funcr.Options{
		LogTimestamp: true,
		Verbosity:    verbosity,
	}
	if isTerminal(w) {
		return funcr.New(func(prefix, args string) {
			if prefix != "" {
				_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
				return
			}
			_, _ = fmt.Fprintln(w, args)
		}, opts)
	}
	return funcr.NewJSON(func(obj string) {
		_, _ = fmt.Fprintln(w, obj)
	}, opts)
}
