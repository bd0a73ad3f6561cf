package bookmark

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Scope restricts a search term to one field category of an entry.
type Scope int

const (
	ScopeAny Scope = iota
	ScopeID
	ScopeTitle
	ScopeTag
	ScopeURL
	ScopeSite
)

var scopeNames = map[string]Scope{
	"id":    ScopeID,
	"title": ScopeTitle,
	"tag":   ScopeTag,
	"url":   ScopeURL,
	"site":  ScopeSite,
}

// Predicate is a single parsed search term: an optional exclusion sign, a
// field scope, and a comparison value (lowercased at parse time).
type Predicate struct {
	Exclude bool
	Scope   Scope
	Value   string
}

// ParseError reports a search term that could not be tokenized. The current
// grammar is permissive, so ParseQuery does not produce it today; it exists
// so callers can handle stricter validation without an API change.
type ParseError struct {
	Term   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad search term %q: %s", e.Term, e.Reason)
}

var (
	// ErrNotFound is returned by Resolve when no entry matches an id argument.
	ErrNotFound = errors.New("no matching bookmark")
	// ErrAmbiguousID is returned by Resolve when a short-id prefix matches
	// more than one entry.
	ErrAmbiguousID = errors.New("ambiguous bookmark id")
)

// ParseQuery converts raw search arguments into predicates.
//
// Each term is [sign][scope:]value. Sign is '+' (include, the default) or
// '-' (exclude). Recognized scopes are id, title, tag, url, and site; a
// colon after any other prefix has no special meaning, so the whole term
// (colon included) becomes an any-scope value. This keeps literal colons,
// e.g. inside URLs, searchable.
func ParseQuery(rawTerms []string) ([]Predicate, error) {
	preds := make([]Predicate, 0, len(rawTerms))
	for _, term := range rawTerms {
		preds = append(preds, parseTerm(term))
	}
	return preds, nil
}

func parseTerm(term string) Predicate {
	rest := term
	exclude := false
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		exclude = rest[0] == '-'
		rest = rest[1:]
	}

	if i := strings.IndexByte(rest, ':'); i >= 0 {
		if scope, ok := scopeNames[strings.ToLower(rest[:i])]; ok {
			return Predicate{Exclude: exclude, Scope: scope, Value: strings.ToLower(rest[i+1:])}
		}
	}

	return Predicate{Exclude: exclude, Scope: ScopeAny, Value: strings.ToLower(rest)}
}

// Matches reports whether the entry satisfies the predicate. Exclusion
// predicates invert the field match.
func (p Predicate) Matches(e *Entry) bool {
	m := p.fieldMatches(e)
	if p.Exclude {
		return !m
	}
	return m
}

// fieldMatches applies the per-scope matching rule. An empty value on a
// scoped predicate means "the field is empty": zero tags for tag, an empty
// string for title/url, never for id (ids are never empty), and an
// unparsable host for site.
func (p Predicate) fieldMatches(e *Entry) bool {
	switch p.Scope {
	case ScopeID:
		if p.Value == "" {
			return e.ID == ""
		}
		return containsFold(e.ID, p.Value)
	case ScopeTitle:
		if p.Value == "" {
			return e.Title == ""
		}
		return containsFold(e.Title, p.Value)
	case ScopeURL:
		if p.Value == "" {
			return e.URL == ""
		}
		return containsFold(e.URL, p.Value)
	case ScopeTag:
		if p.Value == "" {
			return len(e.Tags) == 0
		}
		for _, tag := range e.Tags {
			if containsFold(tag, p.Value) {
				return true
			}
		}
		return false
	case ScopeSite:
		host := hostOf(e.URL)
		if p.Value == "" {
			return host == ""
		}
		return host == p.Value || strings.HasSuffix(host, "."+p.Value)
	default: // ScopeAny
		if containsFold(e.ID, p.Value) || containsFold(e.Title, p.Value) || containsFold(e.URL, p.Value) {
			return true
		}
		for _, tag := range e.Tags {
			if containsFold(tag, p.Value) {
				return true
			}
		}
		return false
	}
}

// containsFold is a case-insensitive substring test. sub must already be
// lowercase (ParseQuery lowercases values).
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

// hostOf extracts the lowercased hostname from a URL, tolerating missing
// schemes ("www.example.com/path"). Returns "" when no host can be parsed.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" && !strings.Contains(raw, "://") {
		if u, err = url.Parse("//" + raw); err == nil {
			host = u.Hostname()
		}
	}
	return strings.ToLower(host)
}

// Select filters entries down to those satisfying every predicate parsed
// from rawTerms. Input order is preserved; an empty query selects all
// entries. Select never mutates entries and imposes no result limit.
func Select(rawTerms []string, entries []Entry) ([]Entry, error) {
	preds, err := ParseQuery(rawTerms)
	if err != nil {
		return nil, err
	}

	matched := make([]Entry, 0, len(entries))
	for i := range entries {
		if matchesAll(preds, &entries[i]) {
			matched = append(matched, entries[i])
		}
	}
	return matched, nil
}

func matchesAll(preds []Predicate, e *Entry) bool {
	for _, p := range preds {
		if !p.Matches(e) {
			return false
		}
	}
	return true
}

// Resolve finds the single entry addressed by an exact id or an unambiguous
// short-id prefix of at least ShortIDLen characters. It layers a uniqueness
// requirement on top of the plain filter for single-entry commands; list
// never uses it.
func Resolve(entries []Entry, idArg string) (*Entry, error) {
	arg := strings.ToLower(idArg)

	for i := range entries {
		if entries[i].ID == arg {
			return &entries[i], nil
		}
	}

	if len(arg) < ShortIDLen {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idArg)
	}

	var found *Entry
	for i := range entries {
		if strings.HasPrefix(entries[i].ID, arg) {
			if found != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, idArg)
			}
			found = &entries[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idArg)
	}
	return found, nil
}
