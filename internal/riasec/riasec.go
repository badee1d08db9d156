// Package riasec holds the six-letter vocational interest alphabet and the
// two-letter code derivation shared by job tagging and questionnaire scoring.
package riasec

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Category string

const (
	Realistic     Category = "R"
	Investigative Category = "I"
	Artistic      Category = "A"
	Social        Category = "S"
	Enterprising  Category = "E"
	Conventional  Category = "C"
)

// order is the tie-break order used whenever two categories score the same.
var order = [...]Category{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}

var names = map[Category]string{
	Realistic:     "Realistic",
	Investigative: "Investigative",
	Artistic:      "Artistic",
	Social:        "Social",
	Enterprising:  "Enterprising",
	Conventional:  "Conventional",
}

var ErrInvalidCode = errors.New("invalid interest code")

// Categories returns all categories in tie-break order.
func Categories() []Category {
	return append([]Category(nil), order[:]...)
}

// ParseCategory accepts a single letter in any case.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := names[c]
	return c, ok
}

func (c Category) Name() string {
	return names[c]
}

// Scores maps each category to a score. Missing categories count as zero.
type Scores map[Category]int

// Ranked returns all six categories sorted by score descending, ties broken by
// the fixed R, I, A, S, E, C order.
func (s Scores) Ranked() []Category {
	ranked := Categories()
	sort.SliceStable(ranked, func(i, j int) bool {
		return s[ranked[i]] > s[ranked[j]]
	})
	return ranked
}

// Code concatenates the two highest scoring categories.
func (s Scores) Code() Code {
	ranked := s.Ranked()
	return Code(string(ranked[0]) + string(ranked[1]))
}

// Code is a two-letter interest code: primary category followed by secondary.
type Code string

// ParseCode validates a user supplied code. Letters are upper-cased.
func ParseCode(s string) (Code, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if len(raw) != 2 {
		return "", fmt.Errorf("%w: %q must have exactly two letters", ErrInvalidCode, s)
	}

	first, ok := ParseCategory(raw[:1])
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidCode, raw[:1])
	}
	second, ok := ParseCategory(raw[1:])
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidCode, raw[1:])
	}
	if first == second {
		return "", fmt.Errorf("%w: %q repeats the same category", ErrInvalidCode, s)
	}

	return Code(string(first) + string(second)), nil
}

func (c Code) Primary() Category {
	if len(c) == 0 {
		return ""
	}
	return Category(c[:1])
}

func (c Code) Secondary() Category {
	if len(c) < 2 {
		return ""
	}
	return Category(c[1:2])
}

// Reverse swaps primary and secondary.
func (c Code) Reverse() Code {
	return Code(string(c.Secondary()) + string(c.Primary()))
}

func (c Code) String() string {
	return string(c)
}
