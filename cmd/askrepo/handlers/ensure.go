package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/askrepo/askrepo/internal/config"
	"github.com/askrepo/askrepo/internal/mention"
	"github.com/askrepo/askrepo/internal/tsbx"
	"github.com/askrepo/askrepo/internal/util/retry"
)

// EnsureOptions selects the mentions to provision and how.
type EnsureOptions struct {
	MentionIDs  []string
	EventsFile  string
	Text        string
	Author      string
	Template    string
	Concurrency int
	MetricsFile string
}

type ensureItem struct {
	MentionID string `json:"mention_id"`
	Tag       string `json:"tag"`
	SandboxID string `json:"sandbox_id,omitempty"`
	Created   bool   `json:"created"`
	Error     string `json:"error,omitempty"`
}

type ensureReport struct {
	Results  []ensureItem `json:"results"`
	Created  int          `json:"created"`
	Existing int          `json:"existing"`
	Failed   int          `json:"failed"`
}

// Ensure provisions one sandbox per mention, skipping mentions that already
// have one. Every mention is attempted; the error reports how many failed.
func Ensure(ctx context.Context, opts *GlobalOptions, out io.Writer, ensure *EnsureOptions) error {
	events, err := collectEvents(ensure)
	if err != nil {
		return err
	}

	var tmpl *config.SandboxTemplate
	if ensure.Template != "" {
		if tmpl, err = config.LoadTemplate(ensure.Template); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	s, err := newSession(opts, reg)
	if err != nil {
		return err
	}

	report := runEnsure(ctx, s, events, tmpl, ensure.Concurrency)

	if ensure.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(ensure.MetricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if err := newPrinter(out, opts.JSON).emit(report, func() string { return renderEnsure(report) }); err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d mentions failed", report.Failed, len(report.Results))
	}
	return nil
}

// collectEvents merges the events file with mentions named on the command
// line. Duplicate ids are dropped.
func collectEvents(o *EnsureOptions) ([]mention.Event, error) {
	var events []mention.Event
	if o.EventsFile != "" {
		loaded, err := mention.LoadEvents(o.EventsFile)
		if err != nil {
			return nil, err
		}
		events = loaded
	}

	seen := make(map[string]bool, len(events))
	for _, e := range events {
		seen[e.ID] = true
	}
	for _, id := range o.MentionIDs {
		e := mention.Event{ID: id, Text: o.Text, AuthorUsername: o.Author}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		events = append(events, e)
	}

	if len(events) == 0 {
		return nil, errors.New("no mentions given: pass mention ids or --events")
	}
	return events, nil
}

func runEnsure(ctx context.Context, s *session, events []mention.Event, tmpl *config.SandboxTemplate, concurrency int) *ensureReport {
	provisioner := tsbx.NewProvisioner(s.client,
		tsbx.WithProvisionerLogger(s.log),
		tsbx.WithProvisionerMetrics(s.metrics),
	)
	env := s.cfg.SandboxEnv()

	report := &ensureReport{Results: make([]ensureItem, len(events))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if concurrency < 1 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for i, e := range events {
		i, e := i, e
		g.Go(func() error {
			item := ensureOne(gctx, s, provisioner, e, mention.Payload(e, tmpl, env))

			mu.Lock()
			defer mu.Unlock()
			report.Results[i] = item
			switch {
			case item.Error != "":
				report.Failed++
			case item.Created:
				report.Created++
			default:
				report.Existing++
			}
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func ensureOne(ctx context.Context, s *session, p *tsbx.Provisioner, e mention.Event, payload tsbx.SandboxPayload) ensureItem {
	tag := mention.Tag(e.ID)
	item := ensureItem{MentionID: e.ID, Tag: tag}
	log := s.log.WithValues("mention", e.ID)

	var result *tsbx.EnsureResult
	err := retry.WithExponentialBackoff(ctx, func(ctx context.Context) error {
		var err error
		result, err = p.Ensure(ctx, tag, payload)
		return err
	},
		retry.WithMaxRetries(s.timeouts.RetryMaxAttempts-1),
		retry.WithInitialDelay(s.timeouts.RetryInitialDelay),
		retry.WithMaxDelay(s.timeouts.RetryMaxDelay),
		retry.WithRetryIf(tsbx.IsRetryable),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.Info("ensure failed, retrying", "attempt", attempt, "delay", delay, "error", err.Error())
		}),
	)
	if err != nil {
		log.Error(err, "failed to ensure sandbox")
		item.Error = err.Error()
		return item
	}

	item.SandboxID = result.Record.ID
	item.Created = result.Created
	return item
}
