// # internal/metrics/score.go
package metrics

import (
	"fmt"
	"math"
	"sort"
)

// Score computes the composite complexity score.
//
// Formula: loc_factor + cyclomatic_factor + structure_factor. Cyclomatic
// complexity carries the highest weight; LOC contributes with a hard cap;
// function and class counts contribute with diminishing returns.
func Score(f *FileAnalysis) float64 {
	locScore := math.Min(float64(f.LinesOfCode)/200.0, 5.0)
	ccScore := float64(f.CyclomaticComplexity) * 0.4
	structureScore := math.Sqrt(float64(f.Functions))*0.3 + math.Sqrt(float64(f.Classes))*0.15
	return locScore + ccScore + structureScore
}

// RefactoringThresholds configures candidate selection. All comparisons are
// inclusive: a metric equal to its threshold flags the file.
type RefactoringThresholds struct {
	MaxComplexityScore  float64
	MaxCyclomatic       int
	MaxLinesOfCode      int
	MaxFunctionsPerFile int
}

// DefaultThresholds returns the standard threshold set.
func DefaultThresholds() RefactoringThresholds {
	return RefactoringThresholds{
		MaxComplexityScore:  10.0,
		MaxCyclomatic:       15,
		MaxLinesOfCode:      500,
		MaxFunctionsPerFile: 25,
	}
}

// ReasonKind labels why a file was flagged.
type ReasonKind string

const (
	ReasonHighScore     ReasonKind = "high_complexity_score"
	ReasonHighCC        ReasonKind = "high_cyclomatic_complexity"
	ReasonLargeFile     ReasonKind = "large_file"
	ReasonManyFunctions ReasonKind = "too_many_functions"
)

// RefactoringReason is one threshold violation with its measured value.
type RefactoringReason struct {
	Kind  ReasonKind
	Value float64
}

// ShortDescription returns the label used in terminal tables.
func (r RefactoringReason) ShortDescription() string {
	switch r.Kind {
	case ReasonHighScore:
		return "High Score"
	case ReasonHighCC:
		return "High CC"
	case ReasonLargeFile:
		return "Large file"
	case ReasonManyFunctions:
		return "Many funcs"
	default:
		return string(r.Kind)
	}
}

// RefactoringCandidate is a flagged file with its ordered violation reasons.
type RefactoringCandidate struct {
	File    FileAnalysis
	Reasons []RefactoringReason
}

// ReasonsString joins the short descriptions with commas.
func (c *RefactoringCandidate) ReasonsString() string {
	s := ""
	for i, r := range c.Reasons {
		if i > 0 {
			s += ", "
		}
		s += r.ShortDescription()
	}
	return s
}

// String implements a compact one-line form for logs.
func (c *RefactoringCandidate) String() string {
	return fmt.Sprintf("%s (score %.2f: %s)", c.File.Path, c.File.ComplexityScore, c.ReasonsString())
}

// IdentifyRefactoringCandidates flags files violating any threshold. Reasons
// keep a fixed order (score, cyclomatic, lines, functions); candidates are
// sorted by descending score with ties keeping input order.
func IdentifyRefactoringCandidates(files []FileAnalysis, thresholds RefactoringThresholds) []RefactoringCandidate {
	var candidates []RefactoringCandidate

	for _, file := range files {
		var reasons []RefactoringReason

		if file.ComplexityScore >= thresholds.MaxComplexityScore {
			reasons = append(reasons, RefactoringReason{Kind: ReasonHighScore, Value: file.ComplexityScore})
		}
		if file.CyclomaticComplexity >= thresholds.MaxCyclomatic {
			reasons = append(reasons, RefactoringReason{Kind: ReasonHighCC, Value: float64(file.CyclomaticComplexity)})
		}
		if file.LinesOfCode >= thresholds.MaxLinesOfCode {
			reasons = append(reasons, RefactoringReason{Kind: ReasonLargeFile, Value: float64(file.LinesOfCode)})
		}
		if file.Functions >= thresholds.MaxFunctionsPerFile {
			reasons = append(reasons, RefactoringReason{Kind: ReasonManyFunctions, Value: float64(file.Functions)})
		}

		if len(reasons) > 0 {
			candidates = append(candidates, RefactoringCandidate{File: file, Reasons: reasons})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].File.ComplexityScore > candidates[j].File.ComplexityScore
	})

	return candidates
}
