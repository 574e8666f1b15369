package model

// Todo is the single persisted entity: one task on the list.
// CreatedAt is an ISO-8601 UTC timestamp assigned once at creation and is
// the sole sort key for listing.
type Todo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}
