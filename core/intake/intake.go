// Package intake decides, before any network or LLM work, whether a message
// carries URLs to enrich or matches a canned intent that can be answered
// straight from the store.
package intake

import (
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"
)

var urlRx = xurls.Strict()

var savedItemsRx = regexp.MustCompile(`(?i)reading list|saved items|saved links|my saved`)

// ExtractURLs returns the http(s) URLs in text, deduplicated, in order of
// first appearance.
func ExtractURLs(text string) []string {
	matches := urlRx.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]bool{}
	urls := []string{}
	for _, m := range matches {
		if !strings.HasPrefix(m, "http://") && !strings.HasPrefix(m, "https://") {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}
	return urls
}

// WantsSavedItems reports whether the message asks for the user's saved
// items. A match short-circuits the whole pipeline: no fetch, no LLM call,
// no action execution.
func WantsSavedItems(text string) bool {
	return savedItemsRx.MatchString(text)
}
