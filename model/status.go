package model

import (
	"fmt"
	"time"
)

type Status struct {
	Id         Id      `json:"id"`
	CreatedAt  string  `json:"created_at"`
	Pinned     bool    `json:"pinned,omitempty"`
	Bookmarked bool    `json:"bookmarked,omitempty"`
	Content    string  `json:"content,omitempty"`
	Account    Account `json:"account"`
}

type Account struct {
	Id   Id     `json:"id"`
	Acct string `json:"acct,omitempty"`
}

// CreatedTime parses the creation timestamp as an absolute UTC instant.
// Fractional seconds are optional.
func (st Status) CreatedTime() (t time.Time, err error) {
	t, err = time.Parse(time.RFC3339Nano, st.CreatedAt)
	switch err {
	case nil:
		t = t.UTC()
	default:
		err = fmt.Errorf("%w: status %s created_at %q: %s", ErrMalformedData, st.Id, st.CreatedAt, err)
	}
	return
}
