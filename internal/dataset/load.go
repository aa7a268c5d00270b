// Package dataset fetches, decodes and validates the timeline dataset.
package dataset

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"mathtimeline/internal/domain"
)

// Loader loads datasets from paths or URLs
type Loader struct {
	log *zap.SugaredLogger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Loader{log: log}
}

// Load fetches src and returns the validated dataset. Every failure is a
// *LoadError. There is no retry; cancellation follows ctx.
func (l *Loader) Load(ctx context.Context, src string) (*domain.Dataset, error) {
	r, err := resolve(src)
	if err != nil {
		return nil, fetchError(src, err)
	}

	data, err := fetch(ctx, r, l.log)
	if err != nil {
		l.log.Warnw("Dataset fetch failed", "source", src, "error", err)
		return nil, fetchError(src, err)
	}

	ds, err := Decode(data, FormatForExt(r.ext))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = src
		}
		l.log.Warnw("Dataset rejected", "source", src, "error", err)
		return nil, err
	}

	l.log.Infow("Dataset loaded",
		"source", src,
		"persons", len(ds.Persons),
		"events", len(ds.Events),
	)
	return ds, nil
}

// Decode parses and validates an in-memory dataset document
func Decode(data []byte, format Format) (*domain.Dataset, error) {
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, malformedError("", err)
	}
	ds, err := buildDataset(doc)
	if err != nil {
		return nil, invalidRecordError("", err)
	}
	return ds, nil
}
