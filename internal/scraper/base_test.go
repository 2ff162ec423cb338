package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateByURL(t *testing.T) {
	posts := []Post{
		{ExternalID: "1", SourceURL: "https://x.com/a/status/1", SearchQuery: "hiring ambassador web3"},
		{ExternalID: "2", SourceURL: "https://x.com/b/status/2"},
		//same post surfaced by a second query
		{ExternalID: "1", SourceURL: "https://x.com/a/status/1", SearchQuery: "brand ambassador crypto"},
	}

	unique := DeduplicateByURL(posts)

	assert.Len(t, unique, 2)
	assert.Equal(t, "hiring ambassador web3", unique[0].SearchQuery, "first occurrence wins")
	assert.Equal(t, "2", unique[1].ExternalID)
}

func TestDeduplicateByURL_Empty(t *testing.T) {
	assert.Empty(t, DeduplicateByURL(nil))
}

func TestEngagementTotal(t *testing.T) {
	e := Engagement{Likes: 3, Reshares: 2, Replies: 1}
	assert.Equal(t, 6, e.Total())
}
