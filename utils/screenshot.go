package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// CaptureScreenshot saves a debug screenshot of the current page into
// logs/screenshots. Failures are logged and swallowed, a missing
// screenshot must never break an acquisition run.
func CaptureScreenshot(page playwright.Page, label string) {
	dir := filepath.Join("logs", "screenshots")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshot directory: %v", err)
		return
	}

	filename := fmt.Sprintf("%s-%s.png", label, time.Now().Format("2006-01-02T15-04-05"))
	path := filepath.Join(dir, filename)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(false),
	}); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return
	}
	log.Printf("📸 Screenshot saved to %s", path)
}
