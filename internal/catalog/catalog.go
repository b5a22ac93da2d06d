package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one class of manipulative language pattern.
// Keywords are literal terms; Patterns are regular expressions. Both are
// matched case-insensitively on word boundaries.
type Category struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Weight      float64  `yaml:"weight"`
	Keywords    []string `yaml:"keywords"`
	Patterns    []string `yaml:"patterns"`
}

// Catalog is the static table of indicator categories.
// Immutable after construction, safe for concurrent use without locking.
type Catalog struct {
	categories []Category
	byID       map[string]int
	compiled   map[string][]*regexp.Regexp
}

// New builds a catalog from the given categories, compiling every keyword
// and pattern into a case-insensitive, word-boundary regex
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[string]int),
		compiled:   make(map[string][]*regexp.Regexp),
	}

	for _, cat := range categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("category with empty id")
		}
		if cat.Weight <= 0 {
			return nil, fmt.Errorf("category %q: weight must be positive, got %v", cat.ID, cat.Weight)
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", cat.ID)
		}

		var res []*regexp.Regexp
		for _, kw := range cat.Keywords {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("category %q: keyword %q: %w", cat.ID, kw, err)
			}
			res = append(res, re)
		}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(`(?i)\b(?:` + p + `)\b`)
			if err != nil {
				return nil, fmt.Errorf("category %q: pattern %q: %w", cat.ID, p, err)
			}
			res = append(res, re)
		}

		c.byID[cat.ID] = len(c.categories)
		c.categories = append(c.categories, cat)
		c.compiled[cat.ID] = res
	}

	return c, nil
}

// Lookup returns the category for the given ID
func (c *Catalog) Lookup(id string) (Category, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// All returns every category in load order
func (c *Catalog) All() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Matchers returns the compiled matchers for a category ID
func (c *Catalog) Matchers(id string) []*regexp.Regexp {
	return c.compiled[id]
}

// Len returns the number of categories
func (c *Catalog) Len() int {
	return len(c.categories)
}

// catalogFile is the YAML shape of an external catalog
type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadFile loads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("catalog %s contains no categories", path)
	}

	return New(file.Categories)
}
