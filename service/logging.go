package service

import (
	"context"
	"fmt"
	"github.com/awakari/mastodon-cleaner/model"
	"github.com/awakari/mastodon-cleaner/util"
	"log/slog"
)

type logging struct {
	svc Service
	log *slog.Logger
}

func NewServiceLogging(svc Service, log *slog.Logger) Service {
	return logging{
		svc: svc,
		log: log,
	}
}

func (l logging) Collect(ctx context.Context) (statuses []model.Status, err error) {
	statuses, err = l.svc.Collect(ctx)
	l.log.Log(ctx, util.LogLevel(err), fmt.Sprintf("service.Collect(): %d, %s", len(statuses), err))
	return
}

func (l logging) Execute(ctx context.Context, selected []model.Status) (r model.Report) {
	r = l.svc.Execute(ctx, selected)
	l.log.Info(fmt.Sprintf("service.Execute(%d): %+v", len(selected), r))
	return
}
