package classifier

import (
	"strings"
	"testing"

	"go-gigradar-automation/internal/scraper"

	"github.com/stretchr/testify/assert"
)

func TestClassify_TechnicalRoleRejected(t *testing.T) {
	c := New(DefaultVocabulary())

	//hiring language and application path must not rescue a technical post
	res := c.Classify(scraper.Post{
		Text:          "Hiring Solidity engineer, apply now",
		ExternalLinks: []string{"https://jobs.example.com/1"},
		Author:        scraper.Author{Verified: true},
	})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"Technical role detected"}, res.Reasons)
}

func TestClassify_SeekerRejected(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(scraper.Post{
		Text: "I'm looking for an ambassador role, anyone hiring?",
	})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"Job seeker post, not hiring"}, res.Reasons)
}

func TestClassify_NoHiringIntent(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(scraper.Post{
		Text:          "Our community ambassador program had a great week, thanks everyone",
		ExternalLinks: []string{"https://example.com"},
	})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"No hiring intent detected"}, res.Reasons)
}

func TestClassify_NoApplicationPath(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(scraper.Post{
		Text: "We are hiring a brand ambassador for our team",
	})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"No application instructions or links"}, res.Reasons)
}

// Scenario from the product sheet: verified account, DM instructions,
// official language, sweet-spot engagement.
func TestClassify_FullScoringPath(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(scraper.Post{
		Text:       "We are hiring a Brand Ambassador! DM us to apply 🚀",
		Author:     scraper.Author{Verified: true, Followers: 5000},
		Engagement: scraper.Engagement{Likes: 12, Reshares: 5, Replies: 3},
	})

	assert.Equal(t, 95, res.Score)
	assert.Equal(t, 40, res.Breakdown.RoleScore)
	assert.Equal(t, 20, res.Breakdown.ApplicationScore)
	assert.Equal(t, 15, res.Breakdown.OfficialBonus)
	assert.Equal(t, 10, res.Breakdown.AuthorScore)
	assert.Equal(t, 10, res.Breakdown.EngagementScore)
	assert.Equal(t, 0, res.Breakdown.SpamPenalty)
	assert.Contains(t, res.Reasons, "Ambassador/KOL role")
	assert.Contains(t, res.Reasons, "Official hiring language")
}

func TestClassify_SpamPenaltiesStackAndClamp(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(scraper.Post{
		Text: "hiring! apply now 🚀🚀🚀 airdrop giveaway tag 3 friends to win 100x",
	})

	assert.Equal(t, -70, res.Breakdown.SpamPenalty)
	assert.Equal(t, 0, res.Score, "penalties exceeding the positive total clamp to zero")
	assert.Contains(t, res.Reasons, "Spam indicators detected")
	assert.Contains(t, res.Reasons, "Engagement farming")
}

func TestClassify_EmojiPenalty(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(scraper.Post{
		Text: "We are hiring a brand ambassador, apply now " + strings.Repeat("🔥", 11),
	})

	assert.Equal(t, -20, res.Breakdown.SpamPenalty)
	assert.Contains(t, res.Reasons, "Excessive emoji")
}

func TestClassify_HighestTierWins(t *testing.T) {
	c := New(DefaultVocabulary())

	//ambassador outranks community even when both vocabularies match
	res := c.Classify(scraper.Post{
		Text:          "We are hiring an ambassador and community manager, apply via link",
		ExternalLinks: []string{"https://forms.example.com"},
	})

	assert.Equal(t, 40, res.Breakdown.RoleScore)
	assert.Equal(t, 25, res.Breakdown.ApplicationScore, "external link beats text instructions")
}

func TestClassify_ScoreBounds(t *testing.T) {
	c := New(DefaultVocabulary())

	tests := []struct {
		name string
		post scraper.Post
	}{
		{
			name: "generic eligible post",
			post: scraper.Post{Text: "hiring, apply at the link", ExternalLinks: []string{"https://a.example"}},
		},
		{
			name: "community role via email",
			post: scraper.Post{Text: "now hiring a discord mod, email us your details"},
		},
		{
			name: "web3 context with comment instructions",
			post: scraper.Post{Text: "crypto project recruiting, comment below to join"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Classify(tt.post)
			b := res.Breakdown
			assert.GreaterOrEqual(t, b.RoleScore, 20)
			assert.LessOrEqual(t, b.RoleScore, 40)
			assert.GreaterOrEqual(t, b.ApplicationScore, 12)
			assert.LessOrEqual(t, b.ApplicationScore, 25)
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
		})
	}
}

func TestClassify_EngagementTiers(t *testing.T) {
	c := New(DefaultVocabulary())

	tests := []struct {
		name     string
		likes    int
		expected int
	}{
		{"no engagement", 0, 0},
		{"fresh", 3, 8},
		{"sweet spot low", 5, 10},
		{"sweet spot high", 50, 10},
		{"viral", 51, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Classify(scraper.Post{
				Text:       "We are hiring a brand ambassador, DM us to apply",
				Engagement: scraper.Engagement{Likes: tt.likes},
			})
			assert.Equal(t, tt.expected, res.Breakdown.EngagementScore)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := New(DefaultVocabulary())
	post := scraper.Post{
		Text:       "We are hiring a Brand Ambassador! DM us to apply",
		Author:     scraper.Author{Verified: true},
		Engagement: scraper.Engagement{Likes: 7},
	}

	first := c.Classify(post)
	second := c.Classify(post)
	assert.Equal(t, first, second)
}

func TestClassify_CustomVocabulary(t *testing.T) {
	//focused vocabulary keeps the gate logic testable in isolation
	c := New(Vocabulary{
		Hiring:      []string{"wanted"},
		Ambassador:  []string{"mascot"},
		Application: []string{"write to us"},
	})

	res := c.Classify(scraper.Post{Text: "mascot wanted, write to us"})
	assert.Equal(t, 40, res.Breakdown.RoleScore)
	assert.Equal(t, 12, res.Breakdown.ApplicationScore)
}
