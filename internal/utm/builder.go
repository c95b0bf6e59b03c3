package utm

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BuildURL appends utm_source, utm_medium, utm_campaign and, when content is
// non-empty, utm_content to the base URL. Values come from a controlled
// catalog of ASCII tags, so they are not URL-encoded. Pre-existing UTM
// parameters in the base URL are not deduplicated: both sets end up in the
// result. That mirrors how the marketing team uses the bot, so it stays.
func BuildURL(baseURL, source, medium, campaign, content string) string {
	separator := "?"
	if strings.Contains(baseURL, "?") {
		separator = "&"
	}
	// Avoid a double separator when the URL already ends in one
	if strings.HasSuffix(baseURL, "?") || strings.HasSuffix(baseURL, "&") {
		separator = ""
	}

	params := fmt.Sprintf("utm_source=%s&utm_medium=%s&utm_campaign=%s", source, medium, campaign)
	if content != "" {
		params += "&utm_content=" + content
	}

	return baseURL + separator + params
}

// ExtractSlug pulls the content seed out of a base URL: the segment after an
// /actions/ marker when present, otherwise the last non-empty path segment,
// otherwise the literal "event".
func ExtractSlug(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "event"
	}

	path := parsed.Path
	if idx := strings.Index(path, "/actions/"); idx >= 0 {
		rest := path[idx+len("/actions/"):]
		if slash := strings.Index(rest, "/"); slash >= 0 {
			rest = rest[:slash]
		}
		if rest != "" {
			return rest
		}
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}

	return "event"
}

// ContentWithDate combines the slug with an optional YYYY-MM-DD date,
// formatted as a DD-MM suffix. The date was validated upstream; if it still
// fails to parse, the raw string with hyphens stripped is appended instead.
func ContentWithDate(slug, dateStr string) string {
	if dateStr == "" {
		return slug
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return slug + "-" + strings.ReplaceAll(dateStr, "-", "")
	}

	return slug + "-" + date.Format("02-01")
}
