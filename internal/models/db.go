package models

import (
	"time"
)

type Category string

const (
	CategoryAmbassador Category = "ambassador"
	CategoryCommunity  Category = "community"
	CategoryContent    Category = "content"
	CategoryMarketing  Category = "marketing"
	CategoryOther      Category = "other"
)

// Gig is a post that cleared the acceptance threshold and was persisted.
// One row per external post ID; never updated after insert.
type Gig struct {
	ExternalID    string    `json:"external_id"`
	Text          string    `json:"text"`
	AuthorHandle  string    `json:"author_handle"`
	AuthorName    string    `json:"author_name"`
	Verified      bool      `json:"verified"`
	Followers     int       `json:"followers"`
	SourceURL     string    `json:"source_url"`
	Likes         int       `json:"likes"`
	Reshares      int       `json:"reshares"`
	Replies       int       `json:"replies"`
	ExternalLinks []string  `json:"external_links"`
	Score         int       `json:"score"`
	Category      Category  `json:"category"`
	Reasons       []string  `json:"reasons"`
	PostedAt      time.Time `json:"posted_at"`
	FirstSeenAt   time.Time `json:"first_seen_at"`
}

// Subscriber is a read-only view of a user eligible for push alerts.
type Subscriber struct {
	ExternalID     string     `json:"external_id"`
	TelegramChatID int64      `json:"telegram_chat_id"`
	Premium        bool       `json:"premium"`
	PremiumUntil   *time.Time `json:"premium_until,omitempty"` // nil = lifetime
	AlertThreshold int        `json:"alert_threshold"`
}

// ActivePremium reports whether the subscription is valid at the given time.
// A nil PremiumUntil means lifetime premium.
func (s Subscriber) ActivePremium(now time.Time) bool {
	if !s.Premium {
		return false
	}
	if s.PremiumUntil == nil {
		return true
	}
	return now.Before(*s.PremiumUntil)
}
