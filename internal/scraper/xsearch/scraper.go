package xsearch

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go-gigradar-automation/internal/browser"
	"go-gigradar-automation/internal/scraper"
	"go-gigradar-automation/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	searchBaseURL = "https://x.com/search"
	navTimeout    = 30000 //ms
	scrollSteps   = 5
	//fixed pause between queries to stay under the source rate limit
	queryDelay = 2 * time.Second
)

// XScraper drives an authenticated browsing session against the x.com
// search surface and extracts candidate posts from the live results feed.
type XScraper struct {
	pm       *browser.PlaywrightManager
	authPath string
	now      func() time.Time
}

func NewXScraper(pm *browser.PlaywrightManager, authPath string) *XScraper {
	return &XScraper{pm: pm, authPath: authPath, now: time.Now}
}

func (s *XScraper) Name() string {
	return "X"
}

// Search runs every query sequentially and returns the deduplicated
// candidate list. A failed query is logged and skipped; only a missing
// session aborts the whole acquisition (with ErrAuthMissing).
func (s *XScraper) Search(ctx context.Context, queries []string, perQueryLimit int) ([]scraper.Post, error) {
	//fail closed before touching the browser
	session, err := browser.LoadSession(s.authPath)
	if err != nil || !session.HasAuthCookie() {
		log.Printf("❌ No usable session at %s. Run: go run ./cmd/save-session", s.authPath)
		return nil, scraper.ErrAuthMissing
	}

	browserCtx, err := s.pm.NewContext(s.authPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	var allPosts []scraper.Post
	for i, query := range queries {
		if ctx.Err() != nil {
			break
		}

		log.Printf("  🔍 [%d/%d] %q", i+1, len(queries), query)
		posts, err := s.searchSingleQuery(page, query, perQueryLimit)
		if err != nil {
			log.Printf("    ⚠️ Query failed: %v", err)
			utils.CaptureScreenshot(page, "query-failed")
			continue
		}
		log.Printf("    Found %d posts", len(posts))
		allPosts = append(allPosts, posts...)

		if i < len(queries)-1 {
			time.Sleep(queryDelay)
		}
	}

	unique := scraper.DeduplicateByURL(allPosts)
	log.Printf("✅ Total: %d unique posts (%d raw)", len(unique), len(allPosts))
	return unique, nil
}

func (s *XScraper) searchSingleQuery(page playwright.Page, query string, limit int) ([]scraper.Post, error) {
	// -RT drops plain retweets, f=live selects the Latest tab
	searchURL := fmt.Sprintf("%s?q=%s&src=typed_query&f=live", searchBaseURL, url.QueryEscape(query+" -RT"))

	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(navTimeout),
	}); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	//human behavior
	browser.RandomDelay(1500, 2500)
	browser.MouseJiggle(page)

	//progressively load more results
	if err := browser.ScrollFeed(page, scrollSteps); err != nil {
		log.Printf("    ⚠️ Scroll interrupted: %v", err)
	}

	articles, err := page.Locator(`article[data-testid="tweet"]`).All()
	if err != nil {
		return nil, fmt.Errorf("failed to locate posts: %w", err)
	}

	var posts []scraper.Post
	for _, article := range articles {
		if len(posts) >= limit {
			break
		}
		post, err := s.extractPost(article, query)
		if err != nil {
			//one malformed element never aborts the rest of the feed
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// extractPost reads one rendered article element into a Post. Any missing
// required field fails this element only.
func (s *XScraper) extractPost(article playwright.Locator, query string) (scraper.Post, error) {
	text, err := article.Locator(`[data-testid="tweetText"]`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(1000),
	})
	if err != nil {
		return scraper.Post{}, fmt.Errorf("no text block: %w", err)
	}
	if len(text) < minTextLength {
		return scraper.Post{}, fmt.Errorf("text too short (%d chars)", len(text))
	}

	href, err := article.Locator(`a[href*="/status/"]`).First().GetAttribute("href")
	if err != nil || href == "" {
		return scraper.Post{}, fmt.Errorf("no permalink")
	}
	handle, postID, err := parseStatusURL(href)
	if err != nil {
		return scraper.Post{}, err
	}

	displayName := handle
	if nameText, err := article.Locator(`[data-testid="User-Name"]`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(1000),
	}); err == nil && firstLine(nameText) != "" {
		displayName = firstLine(nameText)
	}

	verified := false
	if n, err := article.Locator(`[aria-label*="Verified"]`).Count(); err == nil && n > 0 {
		verified = true
	}

	postedAt := s.now()
	if dt, err := article.Locator("time").First().GetAttribute("datetime"); err == nil && dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			postedAt = t
		}
	}

	var hrefs []string
	if anchors, err := article.Locator("a[href]").All(); err == nil {
		for _, a := range anchors {
			if h, err := a.GetAttribute("href"); err == nil && h != "" {
				hrefs = append(hrefs, h)
			}
		}
	}

	return scraper.Post{
		ExternalID: postID,
		Text:       text,
		Author: scraper.Author{
			Handle:      handle,
			DisplayName: displayName,
			Verified:    verified,
			//follower counts are not rendered on result cards
			Followers: 0,
		},
		Engagement: scraper.Engagement{
			Likes:    s.engagementCount(article, "like"),
			Reshares: s.engagementCount(article, "retweet"),
			Replies:  s.engagementCount(article, "reply"),
		},
		ExternalLinks: filterExternalLinks(hrefs),
		PostedAt:      postedAt,
		SourceURL:     canonicalURL(handle, postID),
		SearchQuery:   query,
	}, nil
}

func (s *XScraper) engagementCount(article playwright.Locator, kind string) int {
	el := article.Locator(fmt.Sprintf(`[data-testid="%s"]`, kind)).First()
	aria, err := el.GetAttribute("aria-label")
	if err != nil {
		return 0
	}
	return parseAriaCount(aria)
}
