// Package lang formats locale information as markup attributes.
package lang

import (
	"fmt"
	"strings"
)

// Attributes renders language and charset as attributes suitable for a
// document root element, e.g. `lang="en-US" charset="UTF-8"`. Empty
// inputs are omitted.
func Attributes(language, charset string) string {
	parts := make([]string, 0, 2)
	if language != "" {
		parts = append(parts, fmt.Sprintf("lang=%q", language))
	}
	if charset != "" {
		parts = append(parts, fmt.Sprintf("charset=%q", charset))
	}
	return strings.Join(parts, " ")
}
