package alerts

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go-gigradar-automation/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	sent    []tgbotapi.MessageConfig
	failOn  int //1-based index of the send that errors, 0 = never
	attempt int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.attempt++
	if f.failOn == f.attempt {
		return tgbotapi.Message{}, errors.New("telegram unavailable")
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func newTestNotifier(sender *fakeSender, slept *[]time.Duration) *Notifier {
	return &Notifier{
		bot: sender,
		sleep: func(d time.Duration) {
			if slept != nil {
				*slept = append(*slept, d)
			}
		},
		now: func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func makeGigs(scores ...int) []models.Gig {
	gigs := make([]models.Gig, 0, len(scores))
	for i, s := range scores {
		gigs = append(gigs, models.Gig{
			ExternalID:   string(rune('a' + i)),
			Text:         "We are hiring a brand ambassador, DM us",
			AuthorHandle: "web3co",
			Score:        s,
			SourceURL:    "https://x.com/web3co/status/1",
		})
	}
	return gigs
}

func TestNotify_CapsPerSubscriberWithDelay(t *testing.T) {
	sender := &fakeSender{}
	var slept []time.Duration
	n := newTestNotifier(sender, &slept)

	sub := models.Subscriber{ExternalID: "u1", TelegramChatID: 42, Premium: true}
	sent := n.Notify(makeGigs(95, 90, 85, 80, 75), []models.Subscriber{sub})

	assert.Equal(t, 3, sent)
	assert.Len(t, sender.sent, 3)
	//delay enforced between successive sends to the same subscriber
	assert.Equal(t, []time.Duration{sendDelay, sendDelay}, slept)
	for _, msg := range sender.sent {
		assert.Equal(t, int64(42), msg.ChatID)
		assert.Equal(t, "HTML", msg.ParseMode)
	}
}

func TestNotify_ExpiredPremiumSkipped(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(sender, nil)

	expired := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	lifetime := models.Subscriber{ExternalID: "u1", TelegramChatID: 1, Premium: true}
	lapsed := models.Subscriber{ExternalID: "u2", TelegramChatID: 2, Premium: true, PremiumUntil: &expired}

	sent := n.Notify(makeGigs(90), []models.Subscriber{lapsed, lifetime})

	assert.Equal(t, 1, sent)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, int64(1), sender.sent[0].ChatID)
}

func TestNotify_PerSubscriberThreshold(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(sender, nil)

	picky := models.Subscriber{ExternalID: "u1", TelegramChatID: 7, Premium: true, AlertThreshold: 80}
	sent := n.Notify(makeGigs(95, 70, 65), []models.Subscriber{picky})

	assert.Equal(t, 1, sent, "only gigs at or above the subscriber's own threshold are delivered")
}

func TestNotify_SendFailureDoesNotAbort(t *testing.T) {
	sender := &fakeSender{failOn: 1}
	n := newTestNotifier(sender, nil)

	subs := []models.Subscriber{
		{ExternalID: "u1", TelegramChatID: 1, Premium: true},
		{ExternalID: "u2", TelegramChatID: 2, Premium: true},
	}
	sent := n.Notify(makeGigs(90), subs)

	//first send fails, second subscriber still gets the gig
	assert.Equal(t, 1, sent)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, int64(2), sender.sent[0].ChatID)
}

func TestNotify_DelayAppliesAfterFailedSend(t *testing.T) {
	sender := &fakeSender{failOn: 1}
	var slept []time.Duration
	n := newTestNotifier(sender, &slept)

	sub := models.Subscriber{ExternalID: "u1", TelegramChatID: 42, Premium: true}
	sent := n.Notify(makeGigs(95, 90), []models.Subscriber{sub})

	//the failed first send still counts toward the chat's pacing
	assert.Equal(t, 1, sent)
	assert.Equal(t, []time.Duration{sendDelay}, slept)
}

func TestFormatGigMessage(t *testing.T) {
	gig := models.Gig{
		AuthorHandle:  "web3co",
		Verified:      true,
		Text:          strings.Repeat("x", 350),
		Likes:         12,
		Reshares:      3,
		Replies:       2,
		Score:         85,
		ExternalLinks: []string{"https://forms.example.com/apply", "https://other.example.com"},
		SourceURL:     "https://x.com/web3co/status/1",
		Reasons:       []string{"Ambassador/KOL role", "Has application link", "Official hiring language", "Verified account"},
	}

	msg := FormatGigMessage(gig, true)

	assert.Contains(t, msg, "🔥", "80+ scores get the fire tier")
	assert.Contains(t, msg, "@web3co")
	assert.Contains(t, msg, "✓")
	assert.Contains(t, msg, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, msg, strings.Repeat("x", 301))
	assert.Contains(t, msg, "12 likes • 3 reshares • 2 replies")
	assert.Contains(t, msg, "https://forms.example.com/apply", "first external link only")
	assert.NotContains(t, msg, "other.example.com")
	assert.Contains(t, msg, "https://x.com/web3co/status/1")
	assert.Contains(t, msg, "Ambassador/KOL role • Has application link • Official hiring language")
	assert.NotContains(t, msg, "Verified account", "rationale summary is capped")
}

func TestFormatGigMessage_NoRationaleForFeedGigs(t *testing.T) {
	gig := models.Gig{AuthorHandle: "someone", Score: 45, Reasons: []string{"Web3 opportunity"}}

	msg := FormatGigMessage(gig, false)

	assert.Contains(t, msg, "💼")
	assert.NotContains(t, msg, "Why:")
}
