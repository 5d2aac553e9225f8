package types

import "time"

// FeedSnapshot is the most recent graph built for a configured feed.
type FeedSnapshot struct {
	Name      string    `json:"name"`
	URI       string    `json:"uri"`
	MainTopic string    `json:"mainTopic"`
	Posts     int       `json:"posts"`
	UpdatedAt time.Time `json:"updatedAt"`
	Graph     Graph     `json:"graph"`
}
