package mastodon

import (
	"github.com/awakari/mastodon-cleaner/model"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNextUrl(t *testing.T) {
	pageUrl := "https://mastodon.social/api/v1/accounts/1/statuses"
	cases := map[string]struct {
		header string
		next   string
		err    bool
	}{
		"next and prev": {
			header: `<https://mastodon.social/api/v1/accounts/1/statuses?max_id=7>; rel="next", <https://mastodon.social/api/v1/accounts/1/statuses?min_id=9>; rel="prev"`,
			next:   "https://mastodon.social/api/v1/accounts/1/statuses?max_id=7",
		},
		"prev first": {
			header: `<https://mastodon.social/api/v1/accounts/1/statuses?min_id=9>; rel="prev", <https://mastodon.social/api/v1/accounts/1/statuses?max_id=7>; rel="next"`,
			next:   "https://mastodon.social/api/v1/accounts/1/statuses?max_id=7",
		},
		"absolute path": {
			header: `</api/v1/accounts/1/statuses?max_id=7>; rel="next"`,
			next:   "https://mastodon.social/api/v1/accounts/1/statuses?max_id=7",
		},
		"query only": {
			header: `<?max_id=7>; rel="next"`,
			next:   "https://mastodon.social/api/v1/accounts/1/statuses?max_id=7",
		},
		"prev only": {
			header: `<https://mastodon.social/api/v1/accounts/1/statuses?min_id=9>; rel="prev"`,
		},
		"malformed target": {
			header: `<http://[::1%zz]/statuses>; rel="next"`,
			err:    true,
		},
		"empty": {},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			next, err := NextUrl(pageUrl, c.header)
			assert.Equal(t, c.err, err != nil)
			assert.Equal(t, c.next, next)
		})
	}
}

func TestStatusWebUrl(t *testing.T) {
	cases := map[string]struct {
		st  model.Status
		out string
	}{
		"with handle": {
			st: model.Status{
				Id: "109",
				Account: model.Account{
					Acct: "johndoe",
				},
			},
			out: "https://mastodon.social/@johndoe/109",
		},
		"id only": {
			st: model.Status{
				Id: "109",
			},
			out: "https://mastodon.social/web/statuses/109",
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, c.out, StatusWebUrl("https://mastodon.social", c.st))
		})
	}
}

func TestStatusesUrl(t *testing.T) {
	assert.Equal(t, "https://mastodon.social/api/v1/accounts/42/statuses", StatusesUrl("https://mastodon.social", "42"))
}
