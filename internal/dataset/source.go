package dataset

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"
)

// resolved is a dataset source after go-getter detection
type resolved struct {
	input    string
	detected string
	local    string // set when the source is a file on this machine
	ext      string
}

// resolve turns a user supplied path or URL into a fetchable source
func resolve(input string) (*resolved, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("empty dataset source")
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "get working directory")
	}

	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "detect source %q", input)
	}

	r := &resolved{input: input, detected: detected}

	u, err := url.Parse(detected)
	if err != nil {
		return nil, errors.Wrapf(err, "parse source %q", detected)
	}
	r.ext = strings.ToLower(path.Ext(u.Path))
	if u.Scheme == "file" {
		r.local = filepath.FromSlash(u.Path)
	}
	return r, nil
}

// IsLocal reports whether src names a file on this machine
func IsLocal(src string) (string, bool) {
	r, err := resolve(src)
	if err != nil || r.local == "" {
		return "", false
	}
	return r.local, true
}

// fetch returns the raw bytes of the source. Local files are read directly;
// anything else goes through a go-getter client into a temp dir.
func fetch(ctx context.Context, r *resolved, log *zap.SugaredLogger) ([]byte, error) {
	if r.local != "" {
		log.Debugw("Reading local dataset", "path", r.local)
		data, err := os.ReadFile(r.local)
		if err != nil {
			return nil, errors.Wrap(err, "read dataset file")
		}
		return data, nil
	}

	tempDir, err := os.MkdirTemp("", "mathtimeline-dataset-*")
	if err != nil {
		return nil, errors.Wrap(err, "create temp directory")
	}
	defer os.RemoveAll(tempDir)

	dst := filepath.Join(tempDir, "dataset"+r.ext)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     r.detected,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}

	log.Infow("Fetching dataset with go-getter",
		"input", r.input,
		"detected", r.detected,
	)

	if err := client.Get(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Wrap(err, "read fetched dataset")
	}
	return data, nil
}
