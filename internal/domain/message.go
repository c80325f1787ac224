package domain

// Message is a single entry of a channel's messages.json.
// Timestamp is kept as written; Contents is carried but not aggregated.
type Message struct {
	ID        int64
	Timestamp string
	Contents  string
}
