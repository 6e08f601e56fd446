package models

import (
	"math"
	"strings"
	"time"
)

type BlogState string

const (
	StateDraft     BlogState = "draft"
	StatePublished BlogState = "published"
)

func (s BlogState) Valid() bool { return s == StateDraft || s == StatePublished }

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	State       BlogState `json:"state"`
	ReadCount   int64     `json:"read_count"`
	ReadingTime int       `json:"reading_time"`
	AuthorID    string    `json:"author_id"`
	Author      *Author   `json:"author,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReadingTime returns whole minutes needed to read body, never less than 1.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
