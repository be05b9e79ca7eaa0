// Package fingerprint reduces task text to coarse structural signatures and
// measures how much an expert's tasks repeat the same structure.
package fingerprint

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/okian/expertlens/internal/domain/catalog"
	"github.com/okian/expertlens/internal/domain/model"
)

const (
	lengthBucketSize = 50
	prefixRunes      = 5
	diversityWeight  = 100
	templatePenalty  = 30
	maxScore         = 100
	ratioPrecision   = 1000
)

// Markers are the substrings that flag structural features.
type Markers struct {
	Questions    []string
	Instructions []string
	Lists        []string
}

// FromCatalog returns the marker sets of a catalog.
func FromCatalog(c *catalog.Catalog) Markers {
	return Markers{
		Questions:    c.QuestionMarks,
		Instructions: c.InstructionMarkers,
		Lists:        c.ListMarkers,
	}
}

// Fingerprint is the structural signature of one task. Two tasks are
// structurally identical iff their fingerprints are equal.
type Fingerprint struct {
	LengthBucket   int
	HasQuestion    bool
	HasInstruction bool
	HasListMarker  bool
	Prefix         string
}

// Summary describes the structural spread of a task set.
type Summary struct {
	UniquePatterns   int
	TemplateRatio    float64 // share of the most common fingerprint, 3 dp
	PatternDiversity float64 // unique fingerprints over total, 3 dp
	StructureScore   int     // 0..100
	Dominant         Fingerprint
}

// Of computes the fingerprint of a text. Length and prefix count runes.
func (m Markers) Of(text string) Fingerprint {
	prefix := text
	if utf8.RuneCountInString(text) > prefixRunes {
		prefix = string([]rune(text)[:prefixRunes])
	}
	return Fingerprint{
		LengthBucket:   utf8.RuneCountInString(text) / lengthBucketSize,
		HasQuestion:    containsAny(text, m.Questions),
		HasInstruction: containsAny(text, m.Instructions),
		HasListMarker:  containsAny(text, m.Lists),
		Prefix:         prefix,
	}
}

// All fingerprints every task with non-empty text, preserving order.
func (m Markers) All(tasks []model.TaskRecord) []Fingerprint {
	out := make([]Fingerprint, 0, len(tasks))
	for _, t := range tasks {
		if t.Text == "" {
			continue
		}
		out = append(out, m.Of(t.Text))
	}
	return out
}

// Summarize fingerprints the tasks and derives the structure metrics.
// The structure score is computed from the unrounded ratio and diversity.
func (m Markers) Summarize(tasks []model.TaskRecord) Summary {
	return Summarize(m.All(tasks))
}

// Summarize derives the structure metrics from fingerprints. Among equally
// frequent fingerprints the one encountered first is Dominant. An empty input
// yields the zero Summary.
func Summarize(prints []Fingerprint) Summary {
	if len(prints) == 0 {
		return Summary{}
	}
	counts := make(map[Fingerprint]int, len(prints))
	top := 0
	for _, p := range prints {
		counts[p]++
		top = max(top, counts[p])
	}
	var dominant Fingerprint
	for _, p := range prints {
		if counts[p] == top {
			dominant = p
			break
		}
	}
	total := float64(len(prints))
	ratio := float64(top) / total
	diversity := float64(len(counts)) / total
	score := math.RoundToEven(diversity*diversityWeight - ratio*templatePenalty)

	return Summary{
		UniquePatterns:   len(counts),
		TemplateRatio:    round3(ratio),
		PatternDiversity: round3(diversity),
		StructureScore:   int(math.Max(0, math.Min(maxScore, score))),
		Dominant:         dominant,
	}
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func round3(x float64) float64 {
	return math.RoundToEven(x*ratioPrecision) / ratioPrecision
}
