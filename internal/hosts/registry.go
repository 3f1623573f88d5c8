package hosts

import (
	"slices"
	"strings"
)

// RewriteFunc maps a URL to the form that should be fetched
type RewriteFunc func(url string) string

// Entry is one row of the host table
type Entry struct {
	Key      string
	Strategy Strategy
	Rule     Rule
	Rewrites []RewriteFunc
}

// Alias unifies two host names of the same service
type Alias struct {
	From string
	To   string
}

// Registry is the immutable host table shared by the extractor, the paste
// expander and the verifier. Build it once and pass it explicitly.
type Registry struct {
	entries         []Entry
	forbidden       []string
	aliases         []Alias
	negativeSignals []string
}

// Option customises a Registry at construction time
type Option func(*Registry)

// WithAliases sets host aliases applied to raw text before extraction
func WithAliases(aliases ...Alias) Option {
	return func(r *Registry) {
		r.aliases = append(r.aliases, aliases...)
	}
}

// WithNegativeSignals sets body substrings that mark a custom-host page as dead
// when the entry has no rule of its own
func WithNegativeSignals(signals ...string) Option {
	return func(r *Registry) {
		for _, s := range signals {
			if s != "" && !slices.Contains(r.negativeSignals, s) {
				r.negativeSignals = append(r.negativeSignals, s)
			}
		}
	}
}

// NewRegistry builds a registry from entries in priority order. Entries with
// an empty key are ignored.
func NewRegistry(entries []Entry, forbidden []string, opts ...Option) *Registry {
	r := &Registry{}
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		e.Rule.DeadSignals = slices.Clone(e.Rule.DeadSignals)
		e.Rewrites = slices.Clone(e.Rewrites)
		r.entries = append(r.entries, e)
	}
	for _, f := range forbidden {
		if f != "" {
			r.forbidden = append(r.forbidden, f)
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classify returns the first entry whose key is contained in url
func (r *Registry) Classify(url string) (Entry, bool) {
	for _, e := range r.entries {
		if strings.Contains(url, e.Key) {
			return e, true
		}
	}
	return Entry{}, false
}

// IsSupported reports whether any entry matches url
func (r *Registry) IsSupported(url string) bool {
	_, ok := r.Classify(url)
	return ok
}

// IsForbidden reports whether url contains a denylisted substring
func (r *Registry) IsForbidden(url string) bool {
	for _, f := range r.forbidden {
		if strings.Contains(url, f) {
			return true
		}
	}
	return false
}

// IsPaste reports whether url belongs to a paste site
func (r *Registry) IsPaste(url string) bool {
	e, ok := r.Classify(url)
	return ok && e.Strategy == StrategyPasteUnwrap
}

// Rewrite applies the matching entry's rewrite rules in order.
// Unclassified URLs are returned unchanged.
func (r *Registry) Rewrite(url string) string {
	e, ok := r.Classify(url)
	if !ok {
		return url
	}
	for _, fn := range e.Rewrites {
		url = fn(url)
	}
	return url
}

// Keys returns the host keys in priority order
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Aliases returns a copy of the configured aliases
func (r *Registry) Aliases() []Alias {
	return slices.Clone(r.aliases)
}

// Forbidden returns a copy of the denylist
func (r *Registry) Forbidden() []string {
	return slices.Clone(r.forbidden)
}

// NegativeSignals returns a copy of the fallback dead-page markers
func (r *Registry) NegativeSignals() []string {
	return slices.Clone(r.negativeSignals)
}

// Len returns the number of entries
func (r *Registry) Len() int {
	return len(r.entries)
}
