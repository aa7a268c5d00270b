// Package locale formats dates for the configured locale.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"mathtimeline/internal/domain"
)

// DateFormatter renders a date for display
type DateFormatter interface {
	Format(d domain.Date) string
}

type layout func(d domain.Date) string

func iso(d domain.Date) string { return d.String() }

func monthAbbrev(d domain.Date) string { return d.Month().String()[:3] }

// supported is ordered so that index 0 is the fallback
var supported = []struct {
	tag    language.Tag
	layout layout
}{
	{language.Und, iso},
	{language.AmericanEnglish, func(d domain.Date) string {
		return fmt.Sprintf("%s %d, %d", monthAbbrev(d), d.Day(), d.Year())
	}},
	{language.BritishEnglish, func(d domain.Date) string {
		return fmt.Sprintf("%d %s %d", d.Day(), monthAbbrev(d), d.Year())
	}},
	{language.German, func(d domain.Date) string {
		return fmt.Sprintf("%d.%d.%d", d.Day(), int(d.Month()), d.Year())
	}},
	{language.French, func(d domain.Date) string {
		return fmt.Sprintf("%02d/%02d/%d", d.Day(), int(d.Month()), d.Year())
	}},
	{language.Japanese, func(d domain.Date) string {
		return fmt.Sprintf("%d年%d月%d日", d.Year(), int(d.Month()), d.Day())
	}},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

// Formatter formats dates with the layout best matching a locale
type Formatter struct {
	tag    language.Tag
	layout layout
}

// New returns a formatter for a BCP 47 locale such as "en-GB". Unknown or
// unparseable locales format as ISO dates.
func New(locale string) *Formatter {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return &Formatter{tag: language.Und, layout: iso}
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return &Formatter{tag: language.Und, layout: iso}
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return &Formatter{tag: supported[idx].tag, layout: supported[idx].layout}
}

// Tag returns the supported locale chosen for formatting
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Format renders d
func (f *Formatter) Format(d domain.Date) string {
	return f.layout(d)
}
