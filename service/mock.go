package service

import (
	"context"
	"github.com/awakari/mastodon-cleaner/api/mastodon"
	"github.com/awakari/mastodon-cleaner/model"
	"net/http"
)

type mock struct {
}

func NewServiceMock() Service {
	return mock{}
}

func (m mock) Collect(ctx context.Context) (statuses []model.Status, err error) {
	err = mastodon.StatusCodeError{Code: http.StatusServiceUnavailable}
	return
}

func (m mock) Execute(ctx context.Context, selected []model.Status) (r model.Report) {
	r.Matched = len(selected)
	r.Processed = len(selected)
	r.Deleted = len(selected)
	return
}
