// Package synth produces synthetic task records for the mock profile source.
package synth

import (
	"github.com/okian/expertlens/internal/domain/catalog"
	"github.com/okian/expertlens/internal/domain/model"
	"github.com/okian/expertlens/internal/domain/rng"
)

// Pool sizes and the bias thresholds that select them.
const (
	highTemplateBias   = 0.6
	mediumTemplateBias = 0.3
	concentratedBias   = 0.5

	narrowTemplatePool = 2
	mediumTemplatePool = 4
	narrowDomainPool   = 2
	wideDomainPool     = 6
	narrowCategoryPool = 2
	wideCategoryPool   = 5
)

// Pools are the reduced reference sets tasks are drawn from.
type Pools struct {
	Templates  []string
	Domains    []string
	Categories []string
}

// SelectPools narrows the catalog according to the template bias. Higher
// bias means fewer templates, domains and categories. Draws happen in the
// order templates, domains, categories; the full template pool costs no draw.
func SelectPools(s *rng.Stream, c *catalog.Catalog, bias float64) Pools {
	var p Pools
	switch {
	case bias > highTemplateBias:
		p.Templates = rng.SampleFrom(s, c.PromptTemplates, narrowTemplatePool)
	case bias > mediumTemplateBias:
		p.Templates = rng.SampleFrom(s, c.PromptTemplates, mediumTemplatePool)
	default:
		p.Templates = append([]string(nil), c.PromptTemplates...)
	}

	domains, categories := wideDomainPool, wideCategoryPool
	if bias > concentratedBias {
		domains, categories = narrowDomainPool, narrowCategoryPool
	}
	p.Domains = rng.SampleFrom(s, c.Domains, domains)
	p.Categories = rng.SampleFrom(s, c.TaskCategories, categories)
	return p
}

// Synthesize returns exactly count task records. Pool selection and every
// per-task draw (template, domain, category) consume the stream in that
// order. A non-positive count returns an empty slice without drawing.
func Synthesize(s *rng.Stream, c *catalog.Catalog, count int, bias float64) []model.TaskRecord {
	if count <= 0 {
		return []model.TaskRecord{}
	}
	pools := SelectPools(s, c, bias)
	tasks := make([]model.TaskRecord, 0, count)
	for range count {
		template := rng.ChooseFrom(s, pools.Templates)
		domain := rng.ChooseFrom(s, pools.Domains)
		category := rng.ChooseFrom(s, pools.Categories)
		tasks = append(tasks, model.TaskRecord{
			Text:          c.RenderTask(domain, template, category),
			Category:      category,
			Domain:        domain,
			TemplateIndex: c.TemplateIndex(template),
		})
	}
	return tasks
}
