package present

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-analyzer/internal/pipeline"
	"github.com/jonathan/cv-analyzer/internal/types"
)

func rankedResult(texts []string, totals []float64, best int) *pipeline.Result {
	candidates := make([]types.CandidateResult, len(texts))
	for i := range texts {
		candidates[i] = types.CandidateResult{
			ID:              uuid.New(),
			FileName:        "cv.pdf",
			Text:            texts[i],
			TotalScore:      totals[i],
			SkillsScore:     totals[i],
			ExperienceScore: totals[i],
		}
	}
	return &pipeline.Result{
		Ranked:  &types.RankedSet{Candidates: candidates, Best: best},
		Skipped: []types.SkippedFile{},
		Failed:  []types.FailedFile{},
	}
}

func TestBuildView_LabelsAndFormatting(t *testing.T) {
	res := rankedResult([]string{"first cv", "second cv"}, []float64{72.5, 88.1}, 1)
	view := BuildView(uuid.New(), res)

	require.Len(t, view.Candidates, 2)
	assert.Equal(t, "CV 1", view.Candidates[0].Label)
	assert.Equal(t, "CV 2", view.Candidates[1].Label)
	assert.Equal(t, "72.50", view.Candidates[0].TotalScore)
	assert.Equal(t, "88.10", view.Candidates[1].TotalScore)
}

func TestBuildView_ChartDataset(t *testing.T) {
	res := rankedResult([]string{"a", "b", "c"}, []float64{10, 20, 30}, 2)
	view := BuildView(uuid.New(), res)

	require.NotNil(t, view.Chart)
	assert.Equal(t, []string{"CV 1", "CV 2", "CV 3"}, view.Chart.Labels)
	assert.Equal(t, []float64{10, 20, 30}, view.Chart.SkillsScores)
	assert.Equal(t, []float64{10, 20, 30}, view.Chart.ExperienceScores)
	assert.Equal(t, 100.0, view.Chart.YMax)
}

func TestBuildView_BestCandidateBlock(t *testing.T) {
	res := rankedResult([]string{"alpha", "beta"}, []float64{40, 90}, 1)
	view := BuildView(uuid.New(), res)

	require.NotNil(t, view.Best)
	assert.Equal(t, "CV 2", view.Best.Label)
	assert.Equal(t, "beta", view.Best.Snippet)
	assert.Equal(t, "90.00", view.Best.TotalScore)
}

func TestBuildView_NeutralStateWhenNothingScored(t *testing.T) {
	view := BuildView(uuid.New(), &pipeline.Result{
		Skipped: []types.SkippedFile{{FileName: "a.txt", Reason: "unsupported"}},
	})

	assert.Empty(t, view.Candidates)
	assert.Nil(t, view.Chart)
	assert.Nil(t, view.Best)
	assert.Equal(t, NoCandidatesMessage, view.Message)
	assert.Len(t, view.Skipped, 1)
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("x", 100)
	assert.Equal(t, strings.Repeat("x", SnippetLength)+"...", Snippet(long))

	short := "short text"
	assert.Equal(t, short, Snippet(short))

	// Multibyte text truncates on rune boundaries.
	multibyte := strings.Repeat("é", 40)
	assert.Equal(t, strings.Repeat("é", SnippetLength)+"...", Snippet(multibyte))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "72.50", FormatScore(72.5))
	assert.Equal(t, "0.00", FormatScore(0))
	assert.Equal(t, "100.00", FormatScore(100))
	assert.Equal(t, "33.33", FormatScore(33.333333))
}
