package mastodon

import (
	"context"
	"fmt"
	"github.com/awakari/mastodon-cleaner/model"
	"github.com/awakari/mastodon-cleaner/util"
	"log/slog"
)

type clientLogging struct {
	client Client
	log    *slog.Logger
}

func NewClientLogging(client Client, log *slog.Logger) Client {
	return clientLogging{
		client: client,
		log:    log,
	}
}

func (cl clientLogging) VerifyCredentials(ctx context.Context) (acc model.Account, err error) {
	acc, err = cl.client.VerifyCredentials(ctx)
	cl.log.Log(ctx, util.LogLevel(err), fmt.Sprintf("mastodon.VerifyCredentials(): id=%s, acct=%s, %s", acc.Id, acc.Acct, err))
	return
}

func (cl clientLogging) Statuses(ctx context.Context, pageUrl string) (page model.Page, err error) {
	page, err = cl.client.Statuses(ctx, pageUrl)
	cl.log.Log(ctx, util.LogLevel(err), fmt.Sprintf("mastodon.Statuses(%s): %d, next=%s, %s", pageUrl, len(page.Statuses), page.Next, err))
	return
}

func (cl clientLogging) DeleteStatus(ctx context.Context, id model.Id) (err error) {
	err = cl.client.DeleteStatus(ctx, id)
	lvl := util.LogLevel(err)
	if err != nil {
		lvl = slog.LevelWarn
	}
	cl.log.Log(ctx, lvl, fmt.Sprintf("mastodon.DeleteStatus(%s): %s", id, err))
	return
}
