package mastodon

import (
	"github.com/awakari/mastodon-cleaner/model"
	"github.com/tomnomnom/linkheader"
	"net/url"
)

const pathVerifyCredentials = "/api/v1/accounts/verify_credentials"
const pathAccounts = "/api/v1/accounts/"
const pathStatuses = "/api/v1/statuses/"

func StatusesUrl(serverUrl string, accId model.Id) string {
	return serverUrl + pathAccounts + url.PathEscape(accId.String()) + "/statuses"
}

// StatusWebUrl returns the human-readable address of the status, falling back to the id-only form when the
// account handle is unknown.
func StatusWebUrl(serverUrl string, st model.Status) (u string) {
	switch st.Account.Acct {
	case "":
		u = serverUrl + "/web/statuses/" + url.PathEscape(st.Id.String())
	default:
		u = serverUrl + "/@" + st.Account.Acct + "/" + url.PathEscape(st.Id.String())
	}
	return
}

// NextUrl extracts the target of the rel="next" entry from the Link response header value of the page at pageUrl.
// A relative target is resolved against pageUrl.
func NextUrl(pageUrl, header string) (next string, err error) {
	links := linkheader.Parse(header).FilterByRel("next")
	if len(links) == 0 {
		return
	}
	var base, target *url.URL
	base, err = url.Parse(pageUrl)
	if err == nil {
		target, err = url.Parse(links[0].URL)
	}
	if err == nil {
		next = base.ResolveReference(target).String()
	}
	return
}
