package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

const (
	DefaultNavigationTimeout = 30 * time.Second

	// Some session tokens are set by client-side code after the page has
	// finished loading, so we hold the page open briefly before capturing.
	DefaultSettleDelay = 2 * time.Second
)

// The platform fingerprints automated browsers through navigator.webdriver.
const hideWebdriverScript = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

type Options struct {
	Headed            bool
	UserAgent         string
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
}

// Bootstrap drives a browser to pageURL, waits for the page to settle and
// writes the captured cookies to statePath. The browser is torn down before
// returning, success or not.
func Bootstrap(ctx context.Context, pageURL, statePath string, opts Options) (*State, error) {
	navTimeout := opts.NavigationTimeout
	if navTimeout == 0 {
		navTimeout = DefaultNavigationTimeout
	}
	settle := opts.SettleDelay
	if settle == 0 {
		settle = DefaultSettleDelay
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !opts.Headed),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1440, 900),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancelRun := context.WithTimeout(browserCtx, navTimeout+settle)
	defer cancelRun()

	var cookies []*network.Cookie
	err := chromedp.Run(runCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(hideWebdriverScript).Do(ctx)
			return err
		}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("navigate %s: %w", pageURL, err)
	}

	state := &State{
		Cookies: make([]Cookie, 0, len(cookies)),
		Origins: []json.RawMessage{},
	}
	for _, c := range cookies {
		state.Cookies = append(state.Cookies, Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	if err := state.Write(statePath); err != nil {
		return nil, fmt.Errorf("write session state: %w", err)
	}
	return state, nil
}
