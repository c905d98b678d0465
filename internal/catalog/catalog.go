package catalog

import (
	"fmt"

	"github.com/abhisek/psyquest/internal/quiz"
)

// Catalog is an immutable, validated set of tests indexed by id. It is safe
// for concurrent reads.
type Catalog struct {
	tests []*quiz.Test
	byID  map[string]*quiz.Test
}

// New validates tests and builds the index. Declared order is preserved.
func New(tests []*quiz.Test) (*Catalog, error) {
	if err := validateTests(tests); err != nil {
		return nil, err
	}

	c := &Catalog{
		tests: tests,
		byID:  make(map[string]*quiz.Test, len(tests)),
	}
	for _, t := range tests {
		c.byID[t.ID] = t
	}
	return c, nil
}

// Test returns the test with the given id.
func (c *Catalog) Test(id string) (*quiz.Test, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("test %q: %w", id, quiz.ErrUnknownTest)
	}
	return t, nil
}

// Tests returns all tests in declared order.
func (c *Catalog) Tests() []*quiz.Test {
	out := make([]*quiz.Test, len(c.tests))
	copy(out, c.tests)
	return out
}

// Others returns every test except id, in declared order.
func (c *Catalog) Others(id string) []*quiz.Test {
	var out []*quiz.Test
	for _, t := range c.tests {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Content is the single (testID, gender) lookup behind Questions and Results.
func (c *Catalog) Content(id string, g quiz.Gender) (quiz.Content, error) {
	t, err := c.Test(id)
	if err != nil {
		return quiz.Content{}, err
	}
	content, err := t.Select(g)
	if err != nil {
		return quiz.Content{}, fmt.Errorf("test %q: %w", id, err)
	}
	return content, nil
}

// Questions returns the active question list for id and gender.
func (c *Catalog) Questions(id string, g quiz.Gender) ([]quiz.Question, error) {
	content, err := c.Content(id, g)
	if err != nil {
		return nil, err
	}
	return content.Questions, nil
}

// Results returns the active result set for id and gender.
func (c *Catalog) Results(id string, g quiz.Gender) (quiz.ResultSet, error) {
	content, err := c.Content(id, g)
	if err != nil {
		return nil, err
	}
	return content.Results, nil
}
