package mastodon

import "net/http"

// Headers returns the request headers authenticating as the token owner.
func Headers(token string) (h http.Header) {
	h = http.Header{}
	h.Set("Authorization", "Bearer "+token)
	h.Set("Content-Type", "application/json")
	return
}
