package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from user-supplied free text, such as reward
// suggestions, before it is persisted.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
