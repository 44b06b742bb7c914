package model

// Page is one chunk of a cursor-paginated collection. Empty Next means the collection is exhausted.
type Page struct {
	Statuses []Status
	Next     string
}
