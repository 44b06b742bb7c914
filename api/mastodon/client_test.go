package mastodon

import (
	"context"
	"fmt"
	"github.com/awakari/mastodon-cleaner/config"
	"github.com/awakari/mastodon-cleaner/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

var cfgRetry = config.RetryConfig{
	Max: 2,
	Backoff: config.Duration{
		Duration: time.Millisecond,
	},
}

func newTestClient(srv *httptest.Server) Client {
	return NewClient(srv.Client(), srv.URL, "token1", "mastodon-cleaner-test", cfgRetry)
}

func TestClient_VerifyCredentials(t *testing.T) {
	cases := map[string]struct {
		code int
		body string
		acc  model.Account
		err  error
	}{
		"ok": {
			code: http.StatusOK,
			body: `{"id":"42","acct":"johndoe","username":"johndoe"}`,
			acc: model.Account{
				Id:   "42",
				Acct: "johndoe",
			},
		},
		"unauthorized": {
			code: http.StatusUnauthorized,
			body: `{"error":"The access token is invalid"}`,
			err:  ErrAuthentication,
		},
		"no id": {
			code: http.StatusOK,
			body: `{"acct":"johndoe"}`,
			err:  ErrAuthentication,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, pathVerifyCredentials, r.URL.Path)
				assert.Equal(t, "Bearer token1", r.Header.Get("Authorization"))
				assert.Equal(t, "mastodon-cleaner-test", r.Header.Get("User-Agent"))
				w.WriteHeader(c.code)
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()
			acc, err := newTestClient(srv).VerifyCredentials(context.TODO())
			assert.ErrorIs(t, err, c.err)
			assert.Equal(t, c.acc, acc)
			if c.code != http.StatusOK {
				assert.Equal(t, c.code, StatusCode(err))
			}
		})
	}
}

func TestClient_Statuses(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("max_id") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/accounts/42/statuses?max_id=2>; rel="next", <%s/api/v1/accounts/42/statuses?min_id=3>; rel="prev"`, srv.URL, srv.URL))
			_, _ = w.Write([]byte(`[{"id":"3","created_at":"2024-03-01T12:30:45.000Z","pinned":true},{"id":"2","created_at":"2024-02-01T12:30:45.000Z","account":{"id":"42","acct":"johndoe"}}]`))
		case "2":
			_, _ = w.Write([]byte(`[{"id":1,"created_at":"2024-01-01T12:30:45.000Z","bookmarked":true}]`))
		case "relative":
			w.Header().Set("Link", `</api/v1/accounts/42/statuses?max_id=2>; rel="next"`)
			_, _ = w.Write([]byte(`[]`))
		case "bad":
			_, _ = w.Write([]byte(`{"error":`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)
	//
	page, err := c.Statuses(context.TODO(), StatusesUrl(srv.URL, "42"))
	require.Nil(t, err)
	assert.Equal(t, srv.URL+"/api/v1/accounts/42/statuses?max_id=2", page.Next)
	require.Len(t, page.Statuses, 2)
	assert.Equal(t, model.Id("3"), page.Statuses[0].Id)
	assert.True(t, page.Statuses[0].Pinned)
	assert.Equal(t, "johndoe", page.Statuses[1].Account.Acct)
	//
	page, err = c.Statuses(context.TODO(), page.Next)
	require.Nil(t, err)
	assert.Equal(t, "", page.Next)
	require.Len(t, page.Statuses, 1)
	assert.Equal(t, model.Id("1"), page.Statuses[0].Id)
	assert.True(t, page.Statuses[0].Bookmarked)
	//
	page, err = c.Statuses(context.TODO(), srv.URL+"/api/v1/accounts/42/statuses?max_id=relative")
	require.Nil(t, err)
	assert.Empty(t, page.Statuses)
	assert.Equal(t, srv.URL+"/api/v1/accounts/42/statuses?max_id=2", page.Next)
	//
	page, err = c.Statuses(context.TODO(), srv.URL+"/api/v1/accounts/42/statuses?max_id=bad")
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, model.ErrMalformedData)
	assert.Nil(t, page.Statuses)
	//
	_, err = c.Statuses(context.TODO(), srv.URL+"/api/v1/accounts/42/statuses?max_id=missing")
	assert.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestClient_DeleteStatus(t *testing.T) {
	cases := map[string]struct {
		codes    []int
		attempts int32
		err      error
		code     int
	}{
		"ok": {
			codes:    []int{http.StatusOK},
			attempts: 1,
		},
		"transient failure recovers": {
			codes:    []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusOK},
			attempts: 3,
		},
		"retries exhausted": {
			codes:    []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway, http.StatusOK},
			attempts: 3,
			err:      ErrDeletion,
			code:     http.StatusBadGateway,
		},
		"not found is not retried": {
			codes:    []int{http.StatusNotFound, http.StatusOK},
			attempts: 1,
			err:      ErrDeletion,
			code:     http.StatusNotFound,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, pathStatuses+"109", r.URL.Path)
				i := attempts.Add(1) - 1
				w.WriteHeader(c.codes[i])
			}))
			defer srv.Close()
			err := newTestClient(srv).DeleteStatus(context.TODO(), "109")
			assert.ErrorIs(t, err, c.err)
			assert.Equal(t, c.code, StatusCode(err))
			assert.Equal(t, c.attempts, attempts.Load())
		})
	}
}
