package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Outcome is the result of parsing one facet response: either a value or
// the reason parsing failed.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Or reduces the outcome to a value, substituting fallback on failure.
func (o Outcome[T]) Or(fallback T) T {
	if o.Err != nil {
		return fallback
	}
	return o.Value
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

var errNullPayload = errors.New("payload is null")

// validator is implemented by facets that carry constraints beyond their
// JSON shape.
type validator interface {
	Validate() error
}

// Parse extracts a JSON payload from a model response. The first fenced
// code block wins; otherwise the whole text is decoded.
func Parse[T any](raw string) Outcome[T] {
	payload := raw
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		payload = m[1]
	}
	payload = strings.TrimSpace(payload)

	var v *T
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return Outcome[T]{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if v == nil {
		return Outcome[T]{Err: errNullPayload}
	}
	if val, ok := any(*v).(validator); ok {
		if err := val.Validate(); err != nil {
			return Outcome[T]{Err: fmt.Errorf("schema mismatch: %w", err)}
		}
	}
	return Outcome[T]{Value: *v}
}

// truncate cuts s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}
