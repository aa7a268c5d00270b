package dataset

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Sentinels classifying a LoadError. Check them with errors.Is.
var (
	ErrFetch         = errors.New("dataset fetch failed")
	ErrMalformed     = errors.New("dataset is malformed")
	ErrInvalidRecord = errors.New("dataset record is invalid")
)

// LoadError is returned for every failure to obtain a usable dataset
type LoadError struct {
	Source string
	Status int // HTTP status when the fetch got a response, else 0
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("load dataset %s: status %d: %v", e.Source, e.Status, e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Hint returns the user-facing hints attached to the cause
func (e *LoadError) Hint() string {
	return errors.FlattenHints(e.Err)
}

func fetchError(src string, cause error) *LoadError {
	err := errors.WithHint(
		errors.Mark(errors.Wrap(cause, "fetch"), ErrFetch),
		"check that the path exists or that the URL is reachable",
	)
	return &LoadError{Source: src, Status: statusFrom(cause), Err: err}
}

func malformedError(src string, cause error) *LoadError {
	err := errors.WithHint(
		errors.Mark(errors.Wrap(cause, "decode"), ErrMalformed),
		`expected a JSON or YAML document with "mathematicians" and "events" collections`,
	)
	return &LoadError{Source: src, Err: err}
}

func invalidRecordError(src string, cause error) *LoadError {
	err := errors.WithHint(
		errors.Mark(cause, ErrInvalidRecord),
		"every record needs a unique id, a content string and a start date; persons also need an end date not before the start",
	)
	return &LoadError{Source: src, Err: err}
}

var badStatusRE = regexp.MustCompile(`bad response code: (\d{3})`)

// statusFrom recovers the HTTP status go-getter embeds in its error text
func statusFrom(err error) int {
	m := badStatusRE.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
