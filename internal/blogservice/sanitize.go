package blogservice

import (
	"regexp"
	"strings"
)

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

func sanitizeText(text string) string {
	return strings.TrimSpace(scriptTagPattern.ReplaceAllString(text, ""))
}
