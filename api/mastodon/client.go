package mastodon

import (
	"context"
	"fmt"
	"github.com/awakari/mastodon-cleaner/config"
	"github.com/awakari/mastodon-cleaner/model"
	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"io"
	"net/http"
	"net/url"
)

type Client interface {

	// VerifyCredentials resolves the account owning the access token.
	VerifyCredentials(ctx context.Context) (acc model.Account, err error)

	// Statuses fetches a single page of statuses at the specified cursor url.
	Statuses(ctx context.Context, pageUrl string) (page model.Page, err error)

	DeleteStatus(ctx context.Context, id model.Id) (err error)
}

type client struct {
	clientHttp *http.Client
	serverUrl  string
	headers    http.Header
	cfgRetry   config.RetryConfig
}

type response struct {
	header http.Header
	body   []byte
}

const limitRespBodyLen = 16 * 1_048_576

func NewClient(clientHttp *http.Client, serverUrl, token, userAgent string, cfgRetry config.RetryConfig) Client {
	headers := Headers(token)
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", userAgent)
	return client{
		clientHttp: clientHttp,
		serverUrl:  serverUrl,
		headers:    headers,
		cfgRetry:   cfgRetry,
	}
}

func (c client) VerifyCredentials(ctx context.Context) (acc model.Account, err error) {
	var resp response
	resp, err = c.do(ctx, http.MethodGet, c.serverUrl+pathVerifyCredentials)
	if err == nil {
		err = sonic.Unmarshal(resp.body, &acc)
	}
	if err == nil && acc.Id == "" {
		err = fmt.Errorf("%w: empty account id", model.ErrMalformedData)
	}
	if err != nil {
		acc = model.Account{}
		err = fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return
}

func (c client) Statuses(ctx context.Context, pageUrl string) (page model.Page, err error) {
	var resp response
	resp, err = c.do(ctx, http.MethodGet, pageUrl)
	if err == nil {
		err = sonic.Unmarshal(resp.body, &page.Statuses)
		if err != nil {
			err = fmt.Errorf("%w: %s", model.ErrMalformedData, err)
		}
	}
	if err == nil {
		page.Next, err = NextUrl(pageUrl, resp.header.Get("Link"))
		if err != nil {
			err = fmt.Errorf("%w: Link header: %s", model.ErrMalformedData, err)
		}
	}
	if err != nil {
		page = model.Page{}
		err = fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return
}

func (c client) DeleteStatus(ctx context.Context, id model.Id) (err error) {
	_, err = c.do(ctx, http.MethodDelete, c.serverUrl+pathStatuses+url.PathEscape(id.String()))
	if err != nil {
		err = fmt.Errorf("%w %s: %w", ErrDeletion, id, err)
	}
	return
}

// do performs the request, retrying transport failures, 429 and 5xx responses with exponential backoff up to the
// configured count. Any other non-2xx response fails immediately with StatusCodeError.
func (c client) do(ctx context.Context, method, u string) (resp response, err error) {
	op := func() (errOp error) {
		var req *http.Request
		req, errOp = http.NewRequestWithContext(ctx, method, u, nil)
		if errOp != nil {
			return backoff.Permanent(errOp)
		}
		req.Header = c.headers.Clone()
		var r *http.Response
		r, errOp = c.clientHttp.Do(req)
		if errOp != nil {
			return
		}
		defer r.Body.Close()
		resp.header = r.Header
		resp.body, errOp = io.ReadAll(io.LimitReader(r.Body, limitRespBodyLen))
		switch {
		case errOp != nil:
		case r.StatusCode >= 200 && r.StatusCode < 300:
		case r.StatusCode == http.StatusTooManyRequests, r.StatusCode >= 500:
			errOp = StatusCodeError{Code: r.StatusCode}
		default:
			errOp = backoff.Permanent(StatusCodeError{Code: r.StatusCode})
		}
		return
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfgRetry.Backoff.Duration
	err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfgRetry.Max)), ctx))
	return
}
