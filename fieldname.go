package push

import (
	"regexp"
	"strings"
)

var wordBoundary = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)

// FieldName converts a camelCase (or PascalCase) property name to the
// lowercase-with-underscores form used on the wire, e.g. "fromAddress"
// becomes "from_address".
//
// An underscore is inserted only where a lowercase letter is directly followed
// by an uppercase one. Runs of capitals are not split, so "IDToken" maps to
// "idtoken".
func FieldName(property string) string {
	return strings.ToLower(wordBoundary.ReplaceAllString(property, "${1}_${2}"))
}
