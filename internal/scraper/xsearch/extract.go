package xsearch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// minTextLength filters out reply stubs and emoji-only posts that carry
// no classifiable content.
const minTextLength = 30

var (
	statusURLRegex = regexp.MustCompile(`/([^/]+)/status/(\d+)`)
	ariaCountRegex = regexp.MustCompile(`(\d+)`)
)

// parseStatusURL pulls the author handle and post ID out of a permalink
// href like "/someuser/status/1234567890".
func parseStatusURL(href string) (handle, id string, err error) {
	m := statusURLRegex.FindStringSubmatch(href)
	if m == nil {
		return "", "", fmt.Errorf("not a status url: %q", href)
	}
	return m[1], m[2], nil
}

// canonicalURL rebuilds the permalink without tracking params so the same
// post always dedups to one URL.
func canonicalURL(handle, id string) string {
	return fmt.Sprintf("https://x.com/%s/status/%s", handle, id)
}

// parseAriaCount extracts the leading number from an engagement button's
// aria-label ("42 Likes. Like"). Missing or unparsable labels count as 0.
func parseAriaCount(aria string) int {
	m := ariaCountRegex.FindStringSubmatch(aria)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// filterExternalLinks keeps only outbound URLs, dropping links back to the
// platform itself and its shortener.
func filterExternalLinks(hrefs []string) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, href := range hrefs {
		if !strings.HasPrefix(href, "http") {
			continue
		}
		if strings.Contains(href, "x.com") || strings.Contains(href, "twitter.com") || strings.Contains(href, "t.co") {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}
		links = append(links, href)
	}
	return links
}

// firstLine returns the text before the first newline, trimmed.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
