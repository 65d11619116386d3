package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"ybelaid/dzadscraper/logger"
)

const dismissConsentScript = `
	(function() {
		var buttons = document.querySelectorAll('button, a[role="button"]');
		for (var i = 0; i < buttons.length; i++) {
			var t = (buttons[i].textContent || '').toLowerCase();
			if (t.includes('accepter') || t.includes('accept') || t.includes("j'accepte")) {
				buttons[i].click();
				return true;
			}
		}
		return false;
	})()
`

// FetchOptions control a single page fetch.
type FetchOptions struct {
	SettleDelay    time.Duration // wait after navigation for dynamic content
	WaitSelector   string        // optional selector that must be visible
	ScrollToBottom bool
	DismissConsent bool
	Timeout        time.Duration
}

// Browser owns the shared headless Chrome allocator. Each fetch runs
// in its own tab context, so concurrent fetches never drive the same
// page.
type Browser struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// New starts a headless browser allocator.
func New(headless bool, userAgent string) *Browser {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	if bin := findChromeBinary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
		logger.Info("Using browser binary: %s", bin)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Browser{allocCtx: allocCtx, cancelAlloc: cancel}
}

// Fetch navigates to url in a fresh tab and returns the rendered HTML.
func (b *Browser) Fetch(ctx context.Context, url string, opts FetchOptions) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	// Honor cancellation of the caller's context as well.
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-tabCtx.Done():
		}
	}()

	settle := opts.SettleDelay
	if settle == 0 {
		settle = 3 * time.Second
	}

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
	}
	if opts.DismissConsent {
		actions = append(actions,
			chromedp.Evaluate(dismissConsentScript, nil),
			chromedp.Sleep(500*time.Millisecond),
		)
	}
	if opts.WaitSelector != "" {
		actions = append(actions, chromedp.WaitVisible(opts.WaitSelector, chromedp.ByQuery))
	}
	if opts.ScrollToBottom {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(time.Second),
		)
	}

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", fmt.Errorf("browser fetch %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the allocator down.
func (b *Browser) Close() {
	b.cancelAlloc()
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
