package post

// Post is one published entry in the append-only collection. Timestamp is
// epoch milliseconds assigned at write time and is the sole sort key. URL
// fields stay nil when no attachment was uploaded.
type Post struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	ImageURL  *string `json:"imageUrl"`
	FileURL   *string `json:"fileUrl"`
	Timestamp int64   `json:"timestamp"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
}

// PublishInput carries the user-entered draft: the text plus the raw bytes
// of an optional image and an optional file attachment.
type PublishInput struct {
	Text  string
	Image []byte
	File  []byte
}
