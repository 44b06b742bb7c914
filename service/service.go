package service

import (
	"context"
	"fmt"
	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/awakari/mastodon-cleaner/api/mastodon"
	"github.com/awakari/mastodon-cleaner/config"
	"github.com/awakari/mastodon-cleaner/locale"
	"github.com/awakari/mastodon-cleaner/model"
	"io"
	"time"
)

type Service interface {

	// Collect follows the statuses pagination until the end. Any failure discards everything collected.
	Collect(ctx context.Context) (statuses []model.Status, err error)

	// Execute deletes the selected statuses one by one. Failures are reported per status and don't stop the batch.
	Execute(ctx context.Context, selected []model.Status) (r model.Report)
}

type cleaner struct {
	client  mastodon.Client
	cfg     config.Config
	msgs    locale.Messages
	out     io.Writer
	metrics Metrics
	conv    *md.Converter
}

func NewService(client mastodon.Client, cfg config.Config, msgs locale.Messages, out io.Writer, metrics Metrics) Service {
	return cleaner{
		client:  client,
		cfg:     cfg,
		msgs:    msgs,
		out:     out,
		metrics: metrics,
		conv:    md.NewConverter("", true, nil),
	}
}

// Run collects all the account statuses through svc, selects the ones older than daysOld relative to now and
// deletes (or previews) them. Collection and selection failures abort the run before any deletion.
func Run(ctx context.Context, svc Service, daysOld int, now time.Time) (r model.Report, err error) {
	var statuses []model.Status
	statuses, err = svc.Collect(ctx)
	var selected []model.Status
	if err == nil {
		selected, err = Select(statuses, daysOld, now)
	}
	if err == nil {
		r = svc.Execute(ctx, selected)
	}
	return
}

func (c cleaner) Collect(ctx context.Context) (statuses []model.Status, err error) {
	c.print(locale.KeyFetching)
	var acc model.Account
	acc, err = c.client.VerifyCredentials(ctx)
	if err == nil {
		next := mastodon.StatusesUrl(c.cfg.ServerUrl, acc.Id)
		for next != "" {
			var page model.Page
			page, err = c.client.Statuses(ctx, next)
			if err != nil {
				break
			}
			c.metrics.pages.Inc()
			c.metrics.fetched.Add(float64(len(page.Statuses)))
			statuses = append(statuses, page.Statuses...)
			next = page.Next
		}
	}
	switch err {
	case nil:
		c.print(locale.KeyFound, len(statuses))
	default:
		statuses = nil
	}
	return
}

func (c cleaner) Execute(ctx context.Context, selected []model.Status) (r model.Report) {
	r.DryRun = c.cfg.Dryrun
	r.Matched = len(selected)
	c.metrics.matched.Add(float64(len(selected)))
	for _, st := range selected {
		u := mastodon.StatusWebUrl(c.cfg.ServerUrl, st)
		r.Processed++
		if c.cfg.Dryrun {
			c.print(locale.KeyWouldDelete, u)
			if s := excerpt(c.conv, st.Content); s != "" {
				c.print(locale.KeyExcerpt, s)
			}
			continue
		}
		err := c.client.DeleteStatus(ctx, st.Id)
		switch err {
		case nil:
			r.Deleted++
			c.metrics.deleted.Inc()
			c.print(locale.KeyDeleted, u)
		default:
			r.Failed++
			c.metrics.failed.Inc()
			var reason any = err
			if code := mastodon.StatusCode(err); code > 0 {
				reason = code
			}
			c.print(locale.KeyDeleteFailed, st.Id, reason)
		}
	}
	if r.DryRun {
		c.print(locale.KeySummaryDryRun, r.Processed)
	} else {
		c.print(locale.KeySummary, r.Processed, r.Deleted, r.Failed)
	}
	c.metrics.lastSuccess.SetToCurrentTime()
	return
}

func (c cleaner) print(key locale.Key, args ...any) {
	_, _ = fmt.Fprintln(c.out, c.msgs.Format(key, args...))
}
