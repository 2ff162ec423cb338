// Package classifier scores candidate posts for genuine, applyable
// ambassador-type hiring intent. Classification is a pure function of the
// post: no I/O, no state beyond the keyword tables.
package classifier

import (
	"strings"

	"go-gigradar-automation/internal/scraper"
)

const (
	officialBonus = 15

	verifiedAuthorScore    = 10
	establishedAuthorScore = 5
	establishedFollowers   = 1000

	sweetSpotEngagement = 10
	freshEngagement     = 8
	viralEngagement     = 5

	spamPenalty    = -40
	emojiPenalty   = -20
	farmingPenalty = -30

	maxEmoji           = 10
	maxCurrencySymbols = 3
)

// Breakdown records each scoring component for auditability. It is not
// used for recomputation.
type Breakdown struct {
	RoleScore        int `json:"role_score"`
	ApplicationScore int `json:"application_score"`
	OfficialBonus    int `json:"official_bonus"`
	AuthorScore      int `json:"author_score"`
	EngagementScore  int `json:"engagement_score"`
	SpamPenalty      int `json:"spam_penalty"`
}

type Result struct {
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

// tierRule is one row of an ordered first-match-wins scoring table.
type tierRule struct {
	score  int
	reason string
	match  func(text string, hasLink bool) bool
}

type Classifier struct {
	vocab     Vocabulary
	roleRules []tierRule
	appRules  []tierRule
}

func New(vocab Vocabulary) *Classifier {
	c := &Classifier{vocab: vocab}

	//role tiers, evaluated top to bottom, highest tier wins
	c.roleRules = []tierRule{
		{40, "Ambassador/KOL role", func(t string, _ bool) bool { return containsAny(t, vocab.Ambassador) }},
		{35, "Community/Social role", func(t string, _ bool) bool { return containsAny(t, vocab.Community) }},
		{30, "Marketing/Growth role", func(t string, _ bool) bool { return containsAny(t, vocab.Marketing) }},
		{25, "Web3 opportunity", func(t string, _ bool) bool { return containsAny(t, vocab.Web3) }},
		//floor: a post that passed every gate is never zero-scored here
		{20, "Unclassified role", func(string, bool) bool { return true }},
	}

	//application clarity tiers, mutually exclusive
	c.appRules = []tierRule{
		{25, "Has application link", func(_ string, hasLink bool) bool { return hasLink }},
		{20, "DM to apply", func(t string, _ bool) bool { return containsAny(t, vocab.DM) }},
		{18, "Comment to apply", func(t string, _ bool) bool { return containsAny(t, vocab.Comment) }},
		{15, "Email to apply", func(t string, _ bool) bool { return containsAny(t, vocab.Email) }},
		{12, "Application instructions", func(t string, _ bool) bool { return containsAny(t, vocab.Application) }},
	}

	return c
}

// Classify converts one candidate post into a bounded quality score with
// rationale. Cheap high-precision rejections run before any scoring.
func (c *Classifier) Classify(post scraper.Post) Result {
	text := strings.ToLower(post.Text)

	// ===== STEP 1: TECHNICAL ROLE (REJECT) =====
	if containsAny(text, c.vocab.Technical) {
		return Result{Score: 0, Reasons: []string{"Technical role detected"}}
	}

	// ===== STEP 2: AUTHOR IS SEEKING, NOT HIRING (REJECT) =====
	if containsAny(text, c.vocab.Seeker) {
		return Result{Score: 0, Reasons: []string{"Job seeker post, not hiring"}}
	}

	// ===== STEP 3: HIRING INTENT GATE =====
	official := containsAny(text, c.vocab.OfficialHiring)
	if !official && !containsAny(text, c.vocab.Hiring) {
		return Result{Score: 0, Reasons: []string{"No hiring intent detected"}}
	}

	// ===== STEP 4: APPLICATION PATH GATE =====
	hasLink := len(post.ExternalLinks) > 0
	if !hasLink && !c.hasApplicationSignal(text) {
		return Result{Score: 0, Reasons: []string{"No application instructions or links"}}
	}

	var reasons []string
	var b Breakdown

	// ===== STEP 5: ROLE TYPE (0-40) =====
	for _, rule := range c.roleRules {
		if rule.match(text, hasLink) {
			b.RoleScore = rule.score
			reasons = append(reasons, rule.reason)
			break
		}
	}

	// ===== STEP 6: APPLICATION CLARITY (0-25) =====
	for _, rule := range c.appRules {
		if rule.match(text, hasLink) {
			b.ApplicationScore = rule.score
			reasons = append(reasons, rule.reason)
			break
		}
	}

	// ===== STEP 7: OFFICIAL HIRING LANGUAGE =====
	if official {
		b.OfficialBonus = officialBonus
		reasons = append(reasons, "Official hiring language")
	}

	// ===== STEP 8: AUTHOR CREDIBILITY =====
	if post.Author.Verified {
		b.AuthorScore = verifiedAuthorScore
		reasons = append(reasons, "Verified account")
	} else if post.Author.Followers > establishedFollowers {
		b.AuthorScore = establishedAuthorScore
		reasons = append(reasons, "Established account")
	}

	// ===== STEP 9: ENGAGEMENT =====
	switch total := post.Engagement.Total(); {
	case total >= 5 && total <= 50:
		b.EngagementScore = sweetSpotEngagement
		reasons = append(reasons, "Optimal engagement (early catch)")
	case total > 0 && total < 5:
		b.EngagementScore = freshEngagement
		reasons = append(reasons, "Fresh post")
	case total > 50:
		b.EngagementScore = viralEngagement
		reasons = append(reasons, "Viral, likely saturated")
	}

	// ===== STEP 10: SPAM PENALTIES (stackable) =====
	if containsAny(text, c.vocab.Spam) || countCurrencySymbols(post.Text) > maxCurrencySymbols {
		b.SpamPenalty += spamPenalty
		reasons = append(reasons, "Spam indicators detected")
	}
	if countEmoji(post.Text) > maxEmoji {
		b.SpamPenalty += emojiPenalty
		reasons = append(reasons, "Excessive emoji")
	}
	if containsAny(text, c.vocab.Farming) {
		b.SpamPenalty += farmingPenalty
		reasons = append(reasons, "Engagement farming")
	}

	// ===== FINAL SCORE =====
	score := b.RoleScore + b.ApplicationScore + b.OfficialBonus + b.AuthorScore + b.EngagementScore + b.SpamPenalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Reasons: reasons, Breakdown: b}
}

func (c *Classifier) hasApplicationSignal(text string) bool {
	return containsAny(text, c.vocab.DM) ||
		containsAny(text, c.vocab.Comment) ||
		containsAny(text, c.vocab.Email) ||
		containsAny(text, c.vocab.Application)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// countEmoji counts runes in the common emoji blocks.
func countEmoji(text string) int {
	count := 0
	for _, r := range text {
		if (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) {
			count++
		}
	}
	return count
}

func countCurrencySymbols(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '$', '€', '£', '¥':
			count++
		}
	}
	return count
}
