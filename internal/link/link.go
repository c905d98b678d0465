// Package link builds and parses the shareable result link that carries an
// encoded response from a finished flow to the resolver.
package link

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/abhisek/psyquest/internal/quiz"
)

// Query parameter names.
const (
	ParamData   = "data"
	ParamGender = "gender"
)

// ErrNotResultLink indicates a path that does not name a test result.
var ErrNotResultLink = errors.New("not a result link")

// Link is the parsed form of /test/{id}/result?data=...&gender=...
type Link struct {
	TestID string
	Data   string
	Gender quiz.Gender
}

// Path returns the result path with its query, relative to the site root.
func (l Link) Path() string {
	q := url.Values{}
	q.Set(ParamData, l.Data)
	if l.Gender != quiz.GenderNone {
		q.Set(ParamGender, string(l.Gender))
	}
	return fmt.Sprintf("/test/%s/result?%s", url.PathEscape(l.TestID), q.Encode())
}

// Build joins base (scheme and host, optionally a path prefix) with the
// result path. An empty base yields a relative link.
func Build(base string, l Link) string {
	return strings.TrimRight(base, "/") + l.Path()
}

// Parse reads a result link. Absolute URLs, site-relative paths and paths
// under a prefix are accepted. A missing or malformed data parameter becomes
// an empty sequence. An unrecognised gender is dropped, which a gender-based
// test then reports as missing.
func Parse(raw string) (Link, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Link{}, fmt.Errorf("parse link: %w", err)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	n := len(segs)
	if n < 3 || segs[n-3] != "test" || segs[n-1] != "result" || segs[n-2] == "" {
		return Link{}, fmt.Errorf("%w: %q", ErrNotResultLink, u.Path)
	}

	q := u.Query()
	l := Link{
		TestID: segs[n-2],
		Data:   strings.TrimSpace(q.Get(ParamData)),
	}
	if g, err := quiz.ParseGender(q.Get(ParamGender)); err == nil {
		l.Gender = g
	}
	return l, nil
}
