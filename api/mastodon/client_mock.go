package mastodon

import (
	"context"
	"fmt"
	"github.com/awakari/mastodon-cleaner/model"
	"net/http"
)

// ClientMock serves the pages keyed by their url and records every call.
// Account id "fail" fails the credentials check, unknown page urls respond 404 and deleting id "fail" responds 500.
type ClientMock struct {
	AccountId model.Id
	Pages     map[string]model.Page
	Fetched   []string
	Deleted   []model.Id
}

func NewClientMock(accId model.Id, pages map[string]model.Page) *ClientMock {
	return &ClientMock{
		AccountId: accId,
		Pages:     pages,
	}
}

func (cm *ClientMock) VerifyCredentials(ctx context.Context) (acc model.Account, err error) {
	switch cm.AccountId {
	case "fail":
		err = fmt.Errorf("%w: %w", ErrAuthentication, StatusCodeError{Code: http.StatusUnauthorized})
	default:
		acc.Id = cm.AccountId
		acc.Acct = "johndoe"
	}
	return
}

func (cm *ClientMock) Statuses(ctx context.Context, pageUrl string) (page model.Page, err error) {
	cm.Fetched = append(cm.Fetched, pageUrl)
	var found bool
	page, found = cm.Pages[pageUrl]
	if !found {
		err = fmt.Errorf("%w: %w", ErrFetch, StatusCodeError{Code: http.StatusNotFound})
	}
	return
}

func (cm *ClientMock) DeleteStatus(ctx context.Context, id model.Id) (err error) {
	cm.Deleted = append(cm.Deleted, id)
	switch id {
	case "fail":
		err = fmt.Errorf("%w %s: %w", ErrDeletion, id, StatusCodeError{Code: http.StatusInternalServerError})
	}
	return
}
