package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/psyquest/internal/quiz"
)

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

// defaultVersion is assumed when a catalog file omits its version.
const defaultVersion = "v1.0.0"

//go:embed data/tests.yaml
var defaultCatalog []byte

// fileContent is a question/result partition as written in a catalog file.
type fileContent struct {
	Questions []quiz.Question   `yaml:"questions"`
	Results   []quiz.ResultEntry `yaml:"results"`
}

type fileTest struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	ImageURL    string       `yaml:"imageUrl"`
	GenderBased bool         `yaml:"genderBased"`
	Scoring     quiz.Scoring `yaml:"scoring"`

	// Shared content, used by gender partitions that leave a part out.
	Questions []quiz.Question    `yaml:"questions"`
	Results   []quiz.ResultEntry `yaml:"results"`

	Gender map[quiz.Gender]fileContent `yaml:"gender"`
}

type fileDocument struct {
	Version string     `yaml:"version"`
	Tests   []fileTest `yaml:"tests"`
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes, schema-checks and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	tests, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return New(tests)
}

// Decode reads a YAML catalog into tests without semantic validation.
func Decode(r io.Reader) ([]*quiz.Test, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	// Schema validation runs on a JSON-shaped copy of the document.
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	jsonBytes, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("convert catalog: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("convert catalog: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var fd fileDocument
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := checkVersion(fd.Version); err != nil {
		return nil, err
	}

	tests := make([]*quiz.Test, 0, len(fd.Tests))
	for _, ft := range fd.Tests {
		tests = append(tests, ft.toTest())
	}
	return tests, nil
}

func checkVersion(v string) error {
	if v == "" {
		v = defaultVersion
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("catalog version %q is not a semantic version", v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("catalog version %s not supported (want %s.x)", v, SupportedMajor)
	}
	return nil
}

func (ft fileTest) toTest() *quiz.Test {
	t := &quiz.Test{
		ID:          ft.ID,
		Title:       ft.Title,
		Description: ft.Description,
		ImageURL:    ft.ImageURL,
		Scoring:     normalizeScoring(ft.Scoring),
		GenderBased: ft.GenderBased,
		Content:     make(map[quiz.Gender]quiz.Content),
	}

	if !ft.GenderBased {
		t.Content[quiz.GenderNone] = quiz.Content{
			Questions: normalizeQuestions(ft.Questions),
			Results:   quiz.ResultSet(ft.Results),
		}
		return t
	}

	for _, g := range quiz.Genders() {
		fc, ok := ft.Gender[g]
		if !ok && len(ft.Questions) == 0 && len(ft.Results) == 0 {
			continue
		}
		qs, rs := fc.Questions, fc.Results
		if len(qs) == 0 {
			qs = ft.Questions
		}
		if len(rs) == 0 {
			rs = ft.Results
		}
		t.Content[g] = quiz.Content{
			Questions: normalizeQuestions(qs),
			Results:   quiz.ResultSet(rs),
		}
	}
	return t
}

func normalizeScoring(s quiz.Scoring) quiz.Scoring {
	if s.TieBreak == "" && s.Type == quiz.TraitCount {
		s.TieBreak = quiz.TieBreakFirst
	}
	if s.Bucket != nil {
		b := *s.Bucket
		b.Letter = quiz.Letter(strings.ToUpper(string(b.Letter)))
		s.Bucket = &b
	}
	return s
}

// normalizeQuestions upper-cases score table keys so "a" and "A" are equal.
func normalizeQuestions(qs []quiz.Question) []quiz.Question {
	out := make([]quiz.Question, len(qs))
	for i, q := range qs {
		if len(q.Scores) > 0 {
			scores := make(map[quiz.Letter]int, len(q.Scores))
			for l, v := range q.Scores {
				scores[quiz.Letter(strings.ToUpper(string(l)))] = v
			}
			q.Scores = scores
		}
		out[i] = q
	}
	return out
}
