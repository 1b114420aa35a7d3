// Package present builds the rendering payload consumed by UIs: candidate
// summaries, the bar-chart dataset, and the best-candidate block.
package present

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/pipeline"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// SnippetLength is the number of leading characters of extracted text shown
// as a candidate's identifying snippet.
const SnippetLength = 30

// NoCandidatesMessage is the neutral state shown when nothing could be scored.
const NoCandidatesMessage = "No candidates found. Please check the CV content."

// CandidateView is one candidate's display row. Scores are formatted as
// percentages with two decimal places.
type CandidateView struct {
	Label           string `json:"label"`
	Snippet         string `json:"snippet"`
	TotalScore      string `json:"total_score"`
	SkillsScore     string `json:"skills_score"`
	ExperienceScore string `json:"experience_score"`
}

// ChartData is the bar-chart-ready dataset: one label plus one value per
// candidate in each series, y-domain 0-100.
type ChartData struct {
	Labels           []string  `json:"labels"`
	SkillsScores     []float64 `json:"skills_scores"`
	ExperienceScores []float64 `json:"experience_scores"`
	YMax             float64   `json:"y_max"`
}

// BestCandidateView is the designated best candidate summary block.
type BestCandidateView struct {
	Label           string `json:"label"`
	Snippet         string `json:"snippet"`
	TotalScore      string `json:"total_score"`
	SkillsScore     string `json:"skills_score"`
	ExperienceScore string `json:"experience_score"`
}

// AnalysisView is the full presentation payload for one analyzed batch.
type AnalysisView struct {
	BatchID    string              `json:"batch_id"`
	Candidates []CandidateView     `json:"candidates"`
	Skipped    []types.SkippedFile `json:"skipped,omitempty"`
	Failed     []types.FailedFile  `json:"failed,omitempty"`
	Chart      *ChartData          `json:"chart,omitempty"`
	Best       *BestCandidateView  `json:"best,omitempty"`
	Message    string              `json:"message,omitempty"`
}

// BuildView assembles the presentation payload from a pipeline result. A nil
// or empty ranked set yields the neutral no-candidates view.
func BuildView(batchID uuid.UUID, res *pipeline.Result) *AnalysisView {
	view := &AnalysisView{
		BatchID:    batchID.String(),
		Candidates: make([]CandidateView, 0),
		Skipped:    res.Skipped,
		Failed:     res.Failed,
	}

	if res.Ranked == nil || len(res.Ranked.Candidates) == 0 {
		view.Message = NoCandidatesMessage
		return view
	}

	chart := &ChartData{
		Labels:           make([]string, 0, len(res.Ranked.Candidates)),
		SkillsScores:     make([]float64, 0, len(res.Ranked.Candidates)),
		ExperienceScores: make([]float64, 0, len(res.Ranked.Candidates)),
		YMax:             100,
	}

	for i, candidate := range res.Ranked.Candidates {
		label := fmt.Sprintf("CV %d", i+1)
		view.Candidates = append(view.Candidates, CandidateView{
			Label:           label,
			Snippet:         Snippet(candidate.Text),
			TotalScore:      FormatScore(candidate.TotalScore),
			SkillsScore:     FormatScore(candidate.SkillsScore),
			ExperienceScore: FormatScore(candidate.ExperienceScore),
		})
		chart.Labels = append(chart.Labels, label)
		chart.SkillsScores = append(chart.SkillsScores, candidate.SkillsScore)
		chart.ExperienceScores = append(chart.ExperienceScores, candidate.ExperienceScore)
	}

	best := res.Ranked.BestCandidate()
	view.Chart = chart
	view.Best = &BestCandidateView{
		Label:           fmt.Sprintf("CV %d", res.Ranked.Best+1),
		Snippet:         Snippet(best.Text),
		TotalScore:      FormatScore(best.TotalScore),
		SkillsScore:     FormatScore(best.SkillsScore),
		ExperienceScore: FormatScore(best.ExperienceScore),
	}

	return view
}

// Snippet returns the first SnippetLength characters of text, with an
// ellipsis when truncated.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= SnippetLength {
		return text
	}
	return string(runes[:SnippetLength]) + "..."
}

// FormatScore renders a score as a percentage with two decimal places, e.g.
// "72.50".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}
