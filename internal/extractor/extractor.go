package extractor

import (
	"regexp"
	"slices"
	"strings"

	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
	"github.com/aleister1102/linkchecker/internal/hosts"
	"github.com/rs/zerolog"
)

// Extractor finds links to registered hosts inside free-form text.
// It is stateless after construction and safe for concurrent use.
type Extractor struct {
	pattern  *regexp.Regexp
	replacer *strings.Replacer
	logger   zerolog.Logger
}

// New compiles the host grammar from the registry keys
func New(reg *hosts.Registry, logger zerolog.Logger) (*Extractor, error) {
	pattern, err := BuildHostPattern(reg.Keys())
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to compile host pattern")
	}

	// Split concatenated links first, then fold aliases.
	pairs := []string{"http", " http"}
	for _, a := range reg.Aliases() {
		pairs = append(pairs, a.From, a.To)
	}

	l := logger.With().Str("component", "Extractor").Logger()
	l.Debug().Int("host_keys", reg.Len()).Msg("Host pattern compiled")

	return &Extractor{
		pattern:  pattern,
		replacer: strings.NewReplacer(pairs...),
		logger:   l,
	}, nil
}

// Canonicalize inserts a space before every scheme token and rewrites host
// aliases to their canonical name.
func (e *Extractor) Canonicalize(text string) string {
	return e.replacer.Replace(text)
}

// Extract returns the sorted, distinct links found in text
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	matches := e.pattern.FindAllString(e.Canonicalize(text), -1)
	if len(matches) == 0 {
		return nil
	}

	slices.Sort(matches)
	matches = slices.Compact(matches)

	e.logger.Debug().Int("matches", len(matches)).Msg("Extracted links")
	return matches
}

// Pattern returns the compiled host grammar
func (e *Extractor) Pattern() string {
	return e.pattern.String()
}
