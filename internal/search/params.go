package search

import (
	"strings"
	"unicode/utf8"
)

const (
	minQueryLen    = 2
	maxQueryLen    = 100
	maxLocationLen = 50
)

// Params describes one provider search request.
type Params struct {
	Query    string
	Location string
	Page     int
	Limit    int
}

// Normalized returns a copy with trimmed query/location and page/limit
// defaulted to sane values. Adapters call this before building cache keys so
// equal requests always hash equally.
func (p Params) Normalized() Params {
	p.Query = strings.TrimSpace(p.Query)
	p.Location = strings.TrimSpace(p.Location)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	return p
}

// Validate checks the request before any network call is made. Violations are
// user-correctable and never retried. Lengths count runes, not bytes, so
// non-ASCII queries are judged fairly.
func (p Params) Validate() error {
	query := strings.TrimSpace(p.Query)
	if utf8.RuneCountInString(query) < minQueryLen {
		return &ValidationError{Field: "query", Reason: "must be at least 2 characters long"}
	}
	if utf8.RuneCountInString(p.Query) > maxQueryLen {
		return &ValidationError{Field: "query", Reason: "too long (max 100 characters)"}
	}
	if utf8.RuneCountInString(p.Location) > maxLocationLen {
		return &ValidationError{Field: "location", Reason: "too long (max 50 characters)"}
	}
	return nil
}
