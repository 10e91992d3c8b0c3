// Package validate provides shared field validation functions.
package validate

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	TitleMinLen       = 2
	TitleMaxLen       = 50
	DescriptionMinLen = 10
)

// Title validates that a title is between TitleMinLen and TitleMaxLen
// characters after trimming whitespace.
func Title(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}

	n := utf8.RuneCountInString(title)
	if n < TitleMinLen {
		return fmt.Errorf("must be at least %d characters", TitleMinLen)
	}
	if n > TitleMaxLen {
		return fmt.Errorf("must be at most %d characters", TitleMaxLen)
	}
	return nil
}

// Description validates that a description has at least DescriptionMinLen
// characters after trimming whitespace.
func Description(desc string) error {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(desc) < DescriptionMinLen {
		return fmt.Errorf("must be at least %d characters", DescriptionMinLen)
	}
	return nil
}

// ResourceURL validates that s is an absolute URL with a scheme and host.
func ResourceURL(s string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL %q", s)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL %q: must be absolute", s)
	}
	return nil
}

// Username validates a demo login name is non-empty after trimming.
func Username(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
