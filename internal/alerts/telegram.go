// Package alerts pushes qualifying gigs to premium subscribers over
// Telegram. Delivery is best effort: one failed send never blocks the
// rest of the fan-out.
package alerts

import (
	"fmt"
	"html"
	"log"
	"time"

	"go-gigradar-automation/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	//top gigs delivered to one subscriber per scan
	maxPerSubscriber = 3
	//pause between messages to the same chat, avoids 429s
	sendDelay = 1 * time.Second

	maxTextLength = 300
)

// Sender is the slice of tgbotapi.BotAPI the notifier needs. Tests swap
// in a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier struct {
	bot       Sender
	opsChatID int64
	sleep     func(time.Duration)
	now       func() time.Time
}

func NewNotifier(token string, opsChatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &Notifier{
		bot:       bot,
		opsChatID: opsChatID,
		sleep:     time.Sleep,
		now:       time.Now,
	}, nil
}

// Notify sends the top alert-eligible gigs to every subscriber whose
// entitlement is still valid at send time. Returns the number of
// messages actually delivered.
func (n *Notifier) Notify(gigs []models.Gig, subs []models.Subscriber) int {
	if len(gigs) == 0 || len(subs) == 0 {
		return 0
	}

	sent := 0
	for _, sub := range subs {
		//premium may have expired since the subscriber list was loaded
		if !sub.ActivePremium(n.now()) {
			continue
		}

		delivered := 0
		attempted := 0
		for _, gig := range gigs {
			if delivered >= maxPerSubscriber {
				break
			}
			if sub.AlertThreshold > 0 && gig.Score < sub.AlertThreshold {
				continue
			}

			//pace on attempts: a failed send still counted against the chat's rate limit
			if attempted > 0 {
				n.sleep(sendDelay)
			}
			attempted++

			msg := tgbotapi.NewMessage(sub.TelegramChatID, FormatGigMessage(gig, true))
			msg.ParseMode = "HTML"
			if _, err := n.bot.Send(msg); err != nil {
				log.Printf("   ❌ Alert failed for subscriber %s: %v", sub.ExternalID, err)
				continue
			}
			delivered++
			sent++
		}

		if delivered > 0 {
			log.Printf("   ✅ Sent %d alerts to subscriber %s", delivered, sub.ExternalID)
		}
	}
	return sent
}

// SendStatus posts a short operational line to the ops chat, when one is
// configured.
func (n *Notifier) SendStatus(text string) {
	if n.opsChatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(n.opsChatID, "ℹ️ "+text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}

// FormatGigMessage renders one gig as an HTML Telegram message. The
// rationale block is shown only for alert-grade gigs.
func FormatGigMessage(gig models.Gig, withRationale bool) string {
	scoreEmoji := "💼"
	switch {
	case gig.Score >= 80:
		scoreEmoji = "🔥"
	case gig.Score >= 60:
		scoreEmoji = "⭐"
	}

	verifiedBadge := ""
	if gig.Verified {
		verifiedBadge = " ✓"
	}

	text := fmt.Sprintf(
		"%s <b>New Gig Alert!</b> [%d/100]\n\n<b>@%s</b>%s\n\n%s\n\n📊 <b>Engagement:</b> %d likes • %d reshares • %d replies",
		scoreEmoji, gig.Score,
		html.EscapeString(gig.AuthorHandle), verifiedBadge,
		html.EscapeString(truncate(gig.Text, maxTextLength)),
		gig.Likes, gig.Reshares, gig.Replies,
	)

	if len(gig.ExternalLinks) > 0 {
		text += fmt.Sprintf("\n🔗 <b>Application Link:</b> %s", html.EscapeString(gig.ExternalLinks[0]))
	}

	text += fmt.Sprintf("\n\n<a href=\"%s\">View on X →</a>", gig.SourceURL)

	if withRationale && len(gig.Reasons) > 0 {
		text += fmt.Sprintf("\n\n<i>Why: %s</i>", html.EscapeString(joinReasons(gig.Reasons)))
	}

	return text
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func joinReasons(reasons []string) string {
	const maxReasons = 3
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += " • "
		}
		out += r
	}
	return out
}
