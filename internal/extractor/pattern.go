package extractor

import (
	"regexp"
	"strings"
)

// pathCharClass is what a path segment may contain: anything except
// whitespace, quotes, angle brackets, parentheses, semicolons and commas.
const pathCharClass = `[^ \t\r\n"'<>();,]`

// BuildHostPattern compiles the URL grammar for the given host keys:
// scheme, optional www., one of the keys, then one or more path segments.
func BuildHostPattern(keys []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	if len(quoted) == 0 {
		// Matches nothing.
		return regexp.Compile(`[^\s\S]`)
	}

	pattern := `(https?://)(www\.)?(` + strings.Join(quoted, "|") + `)(/` + pathCharClass + `+)+`
	return regexp.Compile(pattern)
}
