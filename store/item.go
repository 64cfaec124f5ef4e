package store

// Item is the only record the service keeps.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
