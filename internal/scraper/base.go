// Define shared types for all post sources
// Ensure consistency

package scraper

import (
	"context"
	"errors"
	"time"
)

// ErrAuthMissing means no valid persisted session was available. The run
// is expected to end with zero candidates, not to fail the process.
var ErrAuthMissing = errors.New("no authenticated session available")

type Author struct {
	Handle      string
	DisplayName string
	Verified    bool
	Followers   int
}

type Engagement struct {
	Likes    int
	Reshares int
	Replies  int
}

func (e Engagement) Total() int {
	return e.Likes + e.Reshares + e.Replies
}

// Post is one candidate hiring post pulled from the search surface.
type Post struct {
	ExternalID    string
	Text          string
	Author        Author
	Engagement    Engagement
	ExternalLinks []string
	PostedAt      time.Time
	SourceURL     string
	SearchQuery   string
}

//Searcher defines the interface that all post acquirers must implement
type Searcher interface {
	//Search runs every query and returns deduplicated candidate posts
	Search(ctx context.Context, queries []string, perQueryLimit int) ([]Post, error)

	//Name is the source platform name
	Name() string
}

// DeduplicateByURL collapses posts sharing a source URL, keeping the
// first occurrence.
func DeduplicateByURL(posts []Post) []Post {
	seen := make(map[string]struct{}, len(posts))
	unique := make([]Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.SourceURL]; ok {
			continue
		}
		seen[p.SourceURL] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
