// Package urlkey maps raw, user-entered product URLs to canonical keys so that
// tracked items pointing at the same page can share one extraction.
package urlkey

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Houeta/price-refresh/internal/models"
)

const (
	defaultScheme = "https"
	wwwPrefix     = "www."
)

var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// Canonicalize returns the dedup key for rawURL. It never fails: input that cannot
// be parsed as a URL is keyed by its lower-cased, trimmed form.
func Canonicalize(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	withScheme := trimmed
	if !schemePrefix.MatchString(trimmed) {
		withScheme = defaultScheme + "://" + trimmed
	}

	parsed, err := url.Parse(withScheme)
	if err != nil {
		return strings.ToLower(trimmed)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme == "http" {
		scheme = defaultScheme
	}

	host := strings.ToLower(parsed.Host)
	for strings.HasPrefix(host, wwwPrefix) {
		host = strings.TrimPrefix(host, wwwPrefix)
	}

	path := strings.TrimRight(parsed.EscapedPath(), "/")
	if path == "" {
		path = "/"
	}

	return strings.ToLower(scheme + "://" + host + path)
}

// Group partitions items by canonical URL. Members keep the order of items and
// groups are returned in the order their key was first seen.
func Group(items []models.TrackedItem) []models.CanonicalURLGroup {
	index := make(map[string]int, len(items))
	var groups []models.CanonicalURLGroup

	for _, item := range items {
		key := Canonicalize(item.URL)
		idx, found := index[key]
		if !found {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, models.CanonicalURLGroup{Key: key})
		}
		groups[idx].Members = append(groups[idx].Members, item)
	}

	return groups
}
