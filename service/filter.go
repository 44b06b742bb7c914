package service

import (
	"github.com/awakari/mastodon-cleaner/model"
	"time"
)

const day = 24 * time.Hour

// ShouldDelete is true only when the status is older than daysOld whole days and is neither pinned nor bookmarked.
// A status exactly daysOld days old is kept.
func ShouldDelete(st model.Status, daysOld int, now time.Time) (ok bool, err error) {
	var createdAt time.Time
	createdAt, err = st.CreatedTime()
	if err == nil {
		elapsed := int(now.UTC().Sub(createdAt) / day)
		ok = elapsed > daysOld && !st.Pinned && !st.Bookmarked
	}
	return
}

// Select keeps the order of statuses. The first malformed status aborts the selection.
func Select(statuses []model.Status, daysOld int, now time.Time) (selected []model.Status, err error) {
	for _, st := range statuses {
		var ok bool
		ok, err = ShouldDelete(st, daysOld, now)
		if err != nil {
			selected = nil
			break
		}
		if ok {
			selected = append(selected, st)
		}
	}
	return
}
