// Package revel talks to the Revel Up online-ordering platform: it derives
// per-store GraphQL endpoints and headers, replays browser session state over
// plain HTTP, and normalizes product payloads into menu items.
package revel

import (
	"net/url"
	"strings"
	"time"
)

const (
	// MenuMode selects the online-ordering price/availability ruleset.
	MenuMode = "ONLINE_ORDERING"

	DefaultTimezone = "US/Central"

	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// The middleware host ignores requests without this feature-flag header.
	loadedModulesHeader = `["loyalty","config","applepay","giftcard","branding","frontend","paymentmethods","common"]`

	fallbackHost   = "conroe"
	fallbackOrigin = "https://conroe.revelup.online"

	RequestTimeout = 60 * time.Second
)

// BuildGraphQLEndpoint maps a store URL to its middleware GraphQL endpoint.
// The first DNS label of the store host selects the tenant.
func BuildGraphQLEndpoint(storeURL string) string {
	host := fallbackHost
	if u, err := url.Parse(storeURL); err == nil && u.Hostname() != "" {
		if label := strings.Split(u.Hostname(), ".")[0]; label != "" {
			host = label
		}
	}
	return "https://" + host + ".mw.revelup.online/graphql"
}

// BuildHeaders returns the header set every platform request carries. The
// referer is the store origin; everything else is fixed.
func BuildHeaders(storeURL string) map[string]string {
	origin := fallbackOrigin
	if u, err := url.Parse(storeURL); err == nil && u.Hostname() != "" {
		scheme := u.Scheme
		if scheme == "" {
			scheme = "https"
		}
		origin = scheme + "://" + u.Hostname()
	}
	return map[string]string{
		"Accept":                 "*/*",
		"Content-Type":           "application/json",
		"Referer":                origin + "/",
		"X-Oo-Xt-Loaded-Modules": loadedModulesHeader,
		"User-Agent":             UserAgent,
	}
}
