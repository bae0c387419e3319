package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestAuth_LoginLogout walks the full session lifecycle in a real browser:
// sign in, land on the dashboard, sign out, get bounced from protected pages.
func TestAuth_LoginLogout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	app.Backend.addEvent("ev-1", "Morning Run", "Running")

	page := app.newPage(t)
	app.login(t, page)

	// The dashboard greets the viewer and previews the catalog.
	content, err := page.Content()
	if err != nil {
		t.Fatalf("failed to read page: %v", err)
	}
	if !strings.Contains(content, "maria") || !strings.Contains(content, "Morning Run") {
		t.Fatal("dashboard must greet the viewer and preview upcoming events")
	}

	// Log out and verify protected pages bounce back to login.
	if err := page.Locator("form[action='/logout'] button").Click(); err != nil {
		t.Fatalf("failed to click logout: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("logout did not land on login: %v", err)
	}

	if _, err := page.Goto(app.BaseURL + "/profile"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatal("protected pages must redirect anonymous viewers to login")
	}
}

// TestAuth_BadCredentials verifies the form reports a failed login inline.
func TestAuth_BadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Username]").Fill("maria"); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill("wrong"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit: %v", err)
	}

	if err := page.Locator(".notice.error").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatal("expected an inline login error")
	}
	text, _ := page.Locator(".notice.error").TextContent()
	if !strings.Contains(text, "Invalid username or password") {
		t.Fatalf("error text=%q, want the invalid-credentials message", text)
	}
}
