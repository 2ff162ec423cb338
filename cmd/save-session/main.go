// Interactive session bootstrap. Captures an authenticated x.com storage
// state for the scanner, either by opening a headed browser and waiting
// for a manual login, or by pasting an auth_token cookie directly.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-gigradar-automation/internal/browser"

	"github.com/playwright-community/playwright-go"
)

func main() {
	//deliberately not config.Load: this tool needs no bot token or database
	authPath := os.Getenv("AUTH_PATH")
	if authPath == "" {
		authPath = "data/auth.json"
	}

	fmt.Println("\n🔐 X Session Setup")
	fmt.Println("1. Automatic (browser opens, log in yourself)")
	fmt.Println("2. Manual (paste auth_token cookie)")
	fmt.Print("\nEnter choice (1 or 2): ")

	reader := bufio.NewReader(os.Stdin)
	choice, _ := reader.ReadString('\n')

	var err error
	if strings.TrimSpace(choice) == "2" {
		err = manualAuth(reader, authPath)
	} else {
		err = automaticAuth(authPath)
	}
	if err != nil {
		log.Fatalf("❌ Session setup failed: %v", err)
	}

	fmt.Printf("\n✅ Session saved to %s\n", authPath)
}

func automaticAuth(authPath string) error {
	pm, err := browser.NewPlaywright(false)
	if err != nil {
		return err
	}
	defer pm.Close()

	browserCtx, err := pm.NewContext("")
	if err != nil {
		return fmt.Errorf("failed to create browser context: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	if _, err := page.Goto("https://x.com/login", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	fmt.Println("\n⏳ Waiting for you to log in (5 minute limit)...")
	if err := page.WaitForURL("**/home", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(300000),
	}); err != nil {
		return fmt.Errorf("login not detected: %w", err)
	}

	fmt.Println("✓ Login detected! Saving...")
	if err := os.MkdirAll(filepath.Dir(authPath), 0755); err != nil {
		return err
	}
	if _, err := browserCtx.StorageState(authPath); err != nil {
		return fmt.Errorf("failed to save storage state: %w", err)
	}
	return nil
}

func manualAuth(reader *bufio.Reader, authPath string) error {
	fmt.Println("\n📝 Manual Method:")
	fmt.Println("1. Open Chrome → x.com → Login")
	fmt.Println("2. F12 → Application → Cookies → find auth_token")
	fmt.Print("\nPaste auth_token: ")

	token, _ := reader.ReadString('\n')
	token = strings.TrimSpace(token)
	if len(token) < 20 {
		return fmt.Errorf("invalid token")
	}

	session := &browser.Session{
		Cookies: []browser.Cookie{{
			Name:     "auth_token",
			Value:    token,
			Domain:   ".x.com",
			Path:     "/",
			Expires:  float64(time.Now().AddDate(1, 0, 0).Unix()),
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
		}},
	}

	if err := os.MkdirAll(filepath.Dir(authPath), 0755); err != nil {
		return err
	}
	return session.Save(authPath)
}
