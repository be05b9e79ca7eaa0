// Package profile derives a reproducible synthetic expert profile from an
// identifier.
package profile

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/okian/expertlens/internal/domain/catalog"
	"github.com/okian/expertlens/internal/domain/fingerprint"
	"github.com/okian/expertlens/internal/domain/model"
	"github.com/okian/expertlens/internal/domain/rng"
	"github.com/okian/expertlens/internal/domain/scoring"
	"github.com/okian/expertlens/internal/domain/synth"
	"github.com/okian/expertlens/pkg/logger"
)

// Generation parameters.
const (
	minTechStacks = 1
	maxTechStacks = 3
	minSkills     = 3
	maxSkills     = 8
	minYears      = 1
	maxYears      = 15

	taskCountRate = 0.08
	minTaskCount  = 3
	maxTaskCount  = 60

	minTemplateBias = 0.1
	maxTemplateBias = 0.8

	bigCompanyProbability = 0.30
	minCompanies          = 1
	maxCompanies          = 2
)

var (
	degreeChoices = []model.Degree{
		model.DegreeMaster, model.DegreeBachelor, model.DegreePhD, model.DegreeCollege, model.DegreeOther,
	}
	degreeWeights = []float64{40, 35, 10, 10, 5}

	tierChoices = []model.SchoolTier{
		model.Tier985, model.Tier211, model.TierOverseas, model.TierNormal, model.TierOther,
	}
	tierWeights = []float64{25, 20, 10, 35, 10}
)

// Generator builds profiles. It holds no mutable state; every call owns its
// own stream, so it is safe for concurrent use.
type Generator struct {
	catalog     *catalog.Catalog
	scorer      *scoring.Scorer
	concurrency int
	logger      logger.Logger
}

// NewGenerator creates a generator backed by the embedded catalog.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		catalog:     catalog.Default(),
		concurrency: runtime.GOMAXPROCS(0),
		logger:      logger.Get(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.scorer == nil {
		g.scorer = scoring.NewScorer(scoring.WithMarkers(fingerprint.FromCatalog(g.catalog)))
	}
	return g
}

// Generate returns the profile for id. The same id always yields the same
// profile for a given catalog.
func (g *Generator) Generate(id string) model.Profile {
	s := rng.New(id)
	c := g.catalog

	degree := degreeChoices[s.Weighted(degreeWeights)]
	tier := tierChoices[s.Weighted(tierWeights)]
	school := rng.ChooseFrom(s, c.SchoolsFor(tier))
	techStacks := rng.SampleFrom(s, c.TechStacks, s.IntRange(minTechStacks, maxTechStacks))
	skills := rng.SampleFrom(s, c.Skills, s.IntRange(minSkills, maxSkills))
	years := s.IntRange(minYears, maxYears)
	taskCount := max(minTaskCount, min(int(s.ExpoVariate(taskCountRate)), maxTaskCount))
	bias := s.Uniform(minTemplateBias, maxTemplateBias)

	tasks := synth.Synthesize(s, c, taskCount, bias)
	result := g.scorer.Score(tasks)

	bigCompany := s.Float64() < bigCompanyProbability
	employers := c.NormalCompanies
	if bigCompany {
		employers = c.BigCompanies
	}
	companies := rng.SampleFrom(s, employers, s.IntRange(minCompanies, maxCompanies))
	name := rng.ChooseFrom(s, c.Names)

	categories := make([]string, len(tasks))
	domains := make([]string, len(tasks))
	for i, t := range tasks {
		categories[i] = t.Category
		domains[i] = t.Domain
	}

	return model.Profile{
		TalentID:                id,
		Name:                    name,
		Degree:                  degree,
		SchoolTier:              tier,
		SchoolName:              school,
		TechStacks:              techStacks,
		Skills:                  skills,
		YearsOfExperience:       years,
		TaskCount:               taskCount,
		TaskTypes:               distinct(categories),
		Domains:                 distinct(domains),
		TypeScore:               result.Scores.Type,
		DomainScore:             result.Scores.Domain,
		StructureScore:          result.Scores.Structure,
		DiversityScore:          result.Scores.Diversity,
		TemplateRatio:           result.Structure.TemplateRatio,
		UniquePatterns:          result.Structure.UniquePatterns,
		TemplateRiskLevel:       result.Risk.Level,
		TemplateRiskDescription: result.Risk.Description,
		QualityLabel:            result.Quality.Label,
		QualityLabelReason:      result.Quality.Reason,
		HasBigCompanyExp:        bigCompany,
		Companies:               companies,
	}
}

// GenerateBatch generates one profile per id, preserving input order.
// It fails only when ctx is cancelled.
func (g *Generator) GenerateBatch(ctx context.Context, ids []string) ([]model.Profile, error) {
	out := make([]model.Profile, len(ids))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = g.Generate(id)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generate batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate batch: %w", err)
	}

	g.logger.Debug(ctx, "profile batch generated", logger.Int("count", len(out)))
	return out, nil
}

// distinct returns the unique values in first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
