package dataset

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"mathtimeline/internal/domain"
)

// Collection names in the dataset document
const (
	PersonsKey = "mathematicians"
	EventsKey  = "events"
)

// Format is the encoding of a dataset document
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// FormatForExt picks the decoder for a file extension
func FormatForExt(ext string) Format {
	switch strings.ToLower(ext) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

type document struct {
	Persons *[]record `json:"mathematicians" yaml:"mathematicians"`
	Events  *[]record `json:"events" yaml:"events"`
}

type record struct {
	ID      any      `json:"id" yaml:"id"`
	Content string   `json:"content" yaml:"content"`
	Start   string   `json:"start" yaml:"start"`
	End     *string  `json:"end" yaml:"end"`
	Tags    []string `json:"tags" yaml:"tags"`
	Image   string   `json:"image" yaml:"image"`
}

// decodeDocument parses raw bytes into the two collections. It only checks
// the shape of the document; records are validated by buildDataset.
func decodeDocument(data []byte, format Format) (*document, error) {
	if format == FormatAuto {
		format = sniff(data)
	}

	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "parse YAML")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "parse JSON")
		}
	}

	if doc.Persons == nil {
		return nil, errors.Newf("missing %q collection", PersonsKey)
	}
	if doc.Events == nil {
		return nil, errors.Newf("missing %q collection", EventsKey)
	}
	return &doc, nil
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// buildDataset validates the records and converts them to domain types
func buildDataset(doc *document) (*domain.Dataset, error) {
	ds := &domain.Dataset{
		Persons: make([]domain.Person, 0, len(*doc.Persons)),
		Events:  make([]domain.Event, 0, len(*doc.Events)),
	}
	seen := make(map[domain.ID]string)

	for i, r := range *doc.Persons {
		at := PersonsKey + "[" + strconv.Itoa(i) + "]"
		id, start, err := r.common(at, seen)
		if err != nil {
			return nil, err
		}
		if r.End == nil || strings.TrimSpace(*r.End) == "" {
			return nil, errors.Newf("%s: person %q has no end date", at, id)
		}
		end, err := domain.ParseDate(*r.End)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: end", at)
		}
		if end.Before(start) {
			return nil, errors.Newf("%s: end %s is before start %s", at, end, start)
		}
		ds.Persons = append(ds.Persons, domain.Person{
			ID:    id,
			Name:  sanitize(r.Content),
			Start: start,
			End:   end,
			Tags:  sanitizeTags(r.Tags),
			Image: sanitize(r.Image),
		})
	}

	for i, r := range *doc.Events {
		at := EventsKey + "[" + strconv.Itoa(i) + "]"
		id, start, err := r.common(at, seen)
		if err != nil {
			return nil, err
		}
		if r.End != nil {
			return nil, errors.Newf("%s: event %q must not have an end date", at, id)
		}
		ds.Events = append(ds.Events, domain.Event{
			ID:    id,
			Name:  sanitize(r.Content),
			Start: start,
			Tags:  sanitizeTags(r.Tags),
		})
	}

	return ds, nil
}

// common validates the fields shared by both variants and registers the id
func (r record) common(at string, seen map[domain.ID]string) (domain.ID, domain.Date, error) {
	id, err := parseID(r.ID)
	if err != nil {
		return "", domain.Date{}, errors.Wrapf(err, "%s: id", at)
	}
	if prev, dup := seen[id]; dup {
		return "", domain.Date{}, errors.Newf("%s: duplicate id %q (first seen at %s)", at, id, prev)
	}
	seen[id] = at

	if sanitize(r.Content) == "" {
		return "", domain.Date{}, errors.Newf("%s: empty content", at)
	}

	start, err := domain.ParseDate(r.Start)
	if err != nil {
		return "", domain.Date{}, errors.Wrapf(err, "%s: start", at)
	}
	return id, start, nil
}

// parseID accepts integer or string ids
func parseID(v any) (domain.ID, error) {
	switch id := v.(type) {
	case nil:
		return "", errors.New("missing")
	case string:
		s := strings.TrimSpace(id)
		if s == "" {
			return "", errors.New("empty")
		}
		return domain.ID(s), nil
	case json.Number:
		if _, err := id.Int64(); err != nil {
			return "", errors.Newf("not an integer: %s", id)
		}
		return domain.ID(id.String()), nil
	case int:
		return domain.ID(strconv.Itoa(id)), nil
	case int64:
		return domain.ID(strconv.FormatInt(id, 10)), nil
	case uint64:
		return domain.ID(strconv.FormatUint(id, 10)), nil
	case float64:
		if id != math.Trunc(id) {
			return "", errors.Newf("not an integer: %v", id)
		}
		return domain.ID(strconv.FormatFloat(id, 'f', -1, 64)), nil
	default:
		return "", errors.Newf("unsupported type %T", v)
	}
}

// sanitize drops terminal escape sequences and control characters from
// dataset text before it reaches the screen
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func sanitizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = sanitize(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
