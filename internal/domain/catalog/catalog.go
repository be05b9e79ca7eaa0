// Package catalog holds the static reference data the mock profile
// generator draws from: names, schools, skills, domains, prompt templates
// and the marker sets used by structure fingerprinting.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/okian/expertlens/internal/domain/model"
)

// Minimum sizes required by task synthesis pools.
const (
	minTemplates  = 4
	minDomains    = 6
	minCategories = 5
)

//go:embed catalog.yaml
var embedded []byte

// Catalog is the reference data set. Lists are ordered; generators index
// into them with a seeded stream, so reordering changes every profile.
type Catalog struct {
	Names              []string            `yaml:"names"`
	Schools            map[string][]string `yaml:"schools"`
	TechStacks         []string            `yaml:"tech_stacks"`
	Skills             []string            `yaml:"skills"`
	TaskCategories     []string            `yaml:"task_categories"`
	Domains            []string            `yaml:"domains"`
	BigCompanies       []string            `yaml:"big_companies"`
	NormalCompanies    []string            `yaml:"normal_companies"`
	PromptTemplates    []string            `yaml:"prompt_templates"`
	TaskFormat         string              `yaml:"task_format"`
	QuestionMarks      []string            `yaml:"question_marks"`
	InstructionMarkers []string            `yaml:"instruction_markers"`
	ListMarkers        []string            `yaml:"list_markers"`

	templateIndex map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. The embedded file is validated by
// tests, so a decode failure here is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(embedded))
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load decodes and validates a catalog from YAML.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.templateIndex = make(map[string]int, len(c.PromptTemplates))
	for i, t := range c.PromptTemplates {
		if _, dup := c.templateIndex[t]; !dup {
			c.templateIndex[t] = i
		}
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	switch {
	case len(c.PromptTemplates) < minTemplates:
		return fmt.Errorf("%w: need at least %d prompt templates", ErrInvalid, minTemplates)
	case len(c.Domains) < minDomains:
		return fmt.Errorf("%w: need at least %d domains", ErrInvalid, minDomains)
	case len(c.TaskCategories) < minCategories:
		return fmt.Errorf("%w: need at least %d task categories", ErrInvalid, minCategories)
	case len(c.Names) == 0, len(c.TechStacks) == 0, len(c.Skills) == 0:
		return fmt.Errorf("%w: names, tech_stacks and skills must not be empty", ErrInvalid)
	case len(c.BigCompanies) < 2, len(c.NormalCompanies) < 2:
		return fmt.Errorf("%w: need at least 2 companies per list", ErrInvalid)
	case !strings.Contains(c.TaskFormat, "{template}"):
		return fmt.Errorf("%w: task_format must reference {template}", ErrInvalid)
	}
	for _, tier := range []model.SchoolTier{model.Tier985, model.Tier211, model.TierOverseas, model.TierNormal, model.TierOther} {
		if len(c.Schools[tier.String()]) == 0 {
			return fmt.Errorf("%w: no schools for tier %s", ErrInvalid, tier)
		}
	}
	return nil
}

// SchoolsFor returns the school names of a tier.
func (c *Catalog) SchoolsFor(tier model.SchoolTier) []string {
	return c.Schools[tier.String()]
}

// TemplateIndex returns the position of a template in PromptTemplates, or -1.
func (c *Catalog) TemplateIndex(template string) int {
	if i, ok := c.templateIndex[template]; ok {
		return i
	}
	return -1
}

// RenderTask composes the text of a task. Substitution is a single pass,
// so braces inside the template survive untouched.
func (c *Catalog) RenderTask(domain, template, category string) string {
	return strings.NewReplacer(
		"{domain}", domain,
		"{template}", template,
		"{category}", category,
	).Replace(c.TaskFormat)
}
