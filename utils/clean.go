package utils

import (
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanDirName makes a title safe to use as a single path element.
func CleanDirName(input string) string {
	cleaned := unsafeNameChars.ReplaceAllString(input, "_")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.Trim(cleaned, ".")
	return cleaned
}
