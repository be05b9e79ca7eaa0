// Package scoring turns an expert's task records into diversity scores,
// a template-risk level and a quality label.
package scoring

import (
	"math"

	"github.com/okian/expertlens/internal/domain/catalog"
	"github.com/okian/expertlens/internal/domain/fingerprint"
	"github.com/okian/expertlens/internal/domain/model"
)

// Scoring constants.
const (
	maxScore = 100

	typePointsPerCategory = 15
	typeBaseCap           = 60
	balanceWeight         = 50

	domainPointsPerDomain = 12
	domainBaseCap         = 60

	typeWeight      = 0.4
	domainWeight    = 0.4
	structureWeight = 0.2
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithMarkers sets the marker sets used for structure fingerprinting.
func WithMarkers(m fingerprint.Markers) Option {
	return func(s *Scorer) {
		s.markers = m
	}
}

// Scores holds the four dimension scores, each in [0,100].
type Scores struct {
	Type      int
	Domain    int
	Structure int
	Diversity int
}

// Result is everything scoring derives from one task set.
type Result struct {
	Scores    Scores
	Structure fingerprint.Summary
	Risk      Risk
	Quality   Quality
}

// Scorer evaluates task sets. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	markers fingerprint.Markers
}

// NewScorer creates a scorer using the embedded catalog markers by default.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		markers: fingerprint.FromCatalog(catalog.Default()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score runs every scorer and classifier over the tasks.
func (s *Scorer) Score(tasks []model.TaskRecord) Result {
	categories := make([]string, len(tasks))
	domains := make([]string, len(tasks))
	for i, t := range tasks {
		categories[i] = t.Category
		domains[i] = t.Domain
	}

	structure := s.markers.Summarize(tasks)
	scores := Scores{
		Type:      TypeScore(categories),
		Domain:    DomainScore(domains),
		Structure: structure.StructureScore,
	}
	scores.Diversity = Composite(scores.Type, scores.Domain, scores.Structure)

	risk := ClassifyRisk(structure.TemplateRatio, structure.PatternDiversity)
	return Result{
		Scores:    scores,
		Structure: structure,
		Risk:      risk,
		Quality:   ClassifyQuality(scores, len(tasks), risk.Level),
	}
}

// TypeScore rates how varied the task categories are.
func TypeScore(categories []string) int {
	if len(categories) == 0 {
		return 0
	}
	unique, share := spread(categories)
	base := math.Min(float64(unique*typePointsPerCategory), typeBaseCap)
	balance := math.Max(0, (1-share)*balanceWeight)
	return int(math.Min(maxScore, math.RoundToEven(base+balance)))
}

// DomainScore rates how varied the task domains are, penalising sets
// dominated by a single domain.
func DomainScore(domains []string) int {
	if len(domains) == 0 {
		return 0
	}
	unique, share := spread(domains)
	base := math.Min(float64(unique*domainPointsPerDomain), domainBaseCap)
	balance := math.Max(0, (1-share)*balanceWeight)
	return clamp(math.RoundToEven(base + balance - concentrationPenalty(share)))
}

func concentrationPenalty(share float64) float64 {
	switch {
	case share >= 0.9:
		return 40
	case share >= 0.8:
		return 30
	case share >= 0.7:
		return 20
	default:
		return 0
	}
}

// Composite is the weighted diversity score.
func Composite(typeScore, domainScore, structureScore int) int {
	return int(math.RoundToEven(
		float64(typeScore)*typeWeight +
			float64(domainScore)*domainWeight +
			float64(structureScore)*structureWeight,
	))
}

// spread returns the number of distinct labels and the share of the most
// frequent one.
func spread(labels []string) (int, float64) {
	counts := make(map[string]int, len(labels))
	top := 0
	for _, l := range labels {
		counts[l]++
		top = max(top, counts[l])
	}
	return len(counts), float64(top) / float64(len(labels))
}

func clamp(x float64) int {
	return int(math.Max(0, math.Min(maxScore, x)))
}
