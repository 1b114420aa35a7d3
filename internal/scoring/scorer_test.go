package scoring

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-analyzer/internal/classify"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// fakeClassifier returns canned logits and records the text it received.
type fakeClassifier struct {
	logits   []float64
	err      error
	lastText string
}

func (f *fakeClassifier) Logits(_ context.Context, text string) ([]float64, error) {
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.logits, nil
}

func (f *fakeClassifier) Close() error { return nil }

func TestScore_DerivesScoresFromClassifier(t *testing.T) {
	fake := &fakeClassifier{logits: []float64{2.0, 1.0, 0.5, 0.3, 0.1}}
	scorer, err := NewScorer(fake, Weights{}, 0)
	require.NoError(t, err)

	result, err := scorer.Score(context.Background(), "cv.pdf", "built backend services in Go")
	require.NoError(t, err)

	vector, err := Softmax(fake.logits)
	require.NoError(t, err)

	assert.Equal(t, "cv.pdf", result.FileName)
	assert.InDelta(t, vector[0]*100, result.SkillsScore, 1e-9)
	assert.InDelta(t, vector[1]*100, result.ExperienceScore, 1e-9)
	assert.NotEqual(t, result.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestScore_TotalIsAverageWithDefaultWeights(t *testing.T) {
	cases := []struct {
		name   string
		logits []float64
	}{
		{"skills heavy", []float64{3.0, 0.5, 0.2, 0.1, 0.0}},
		{"experience heavy", []float64{0.5, 3.0, 0.2, 0.1, 0.0}},
		{"uniform", []float64{1.0, 1.0, 1.0, 1.0, 1.0}},
		{"negative logits", []float64{-1.0, -2.0, -0.5, -3.0, -1.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer, err := NewScorer(&fakeClassifier{logits: tc.logits}, DefaultWeights(), 0)
			require.NoError(t, err)

			result, err := scorer.Score(context.Background(), "cv.pdf", "text")
			require.NoError(t, err)

			expected := (result.SkillsScore + result.ExperienceScore) / 2
			assert.InDelta(t, expected, result.TotalScore, 1e-9)
		})
	}
}

func TestScore_TruncatesInputToTokenLimit(t *testing.T) {
	fake := &fakeClassifier{logits: []float64{1, 1, 1, 1, 1}}
	scorer, err := NewScorer(fake, Weights{}, 0)
	require.NoError(t, err)

	longText := strings.Repeat("word ", 1000)
	result, err := scorer.Score(context.Background(), "cv.pdf", longText)
	require.NoError(t, err)

	assert.Len(t, strings.Fields(fake.lastText), DefaultMaxTokens)
	// The full text is preserved on the result for snippets.
	assert.Equal(t, longText, result.Text)
}

func TestScore_ClassifierFailurePropagates(t *testing.T) {
	fake := &fakeClassifier{err: &classify.Error{Err: assert.AnError}}
	scorer, err := NewScorer(fake, Weights{}, 0)
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), "cv.pdf", "text")
	require.Error(t, err)

	var classifyErr *classify.Error
	assert.ErrorAs(t, err, &classifyErr)
}

func TestNewScorer_RejectsInvalidWeights(t *testing.T) {
	cases := []struct {
		name    string
		weights Weights
	}{
		{"sum above one", Weights{Skills: 0.7, Experience: 0.7}},
		{"sum below one", Weights{Skills: 0.3, Experience: 0.3}},
		{"negative component", Weights{Skills: -0.5, Experience: 1.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewScorer(&fakeClassifier{logits: []float64{1, 1, 1, 1, 1}}, tc.weights, 0)
			assert.Error(t, err)
		})
	}
}

func TestNewScorer_AcceptsConfigurableWeights(t *testing.T) {
	fake := &fakeClassifier{logits: []float64{2.0, 1.0, 0.0, 0.0, 0.0}}
	scorer, err := NewScorer(fake, Weights{Skills: 0.8, Experience: 0.2}, 0)
	require.NoError(t, err)

	result, err := scorer.Score(context.Background(), "cv.pdf", "text")
	require.NoError(t, err)

	expected := 0.8*result.SkillsScore + 0.2*result.ExperienceScore
	assert.InDelta(t, expected, result.TotalScore, 1e-9)
}

func TestSoftmax_SumsToOneWithComponentsInRange(t *testing.T) {
	cases := []struct {
		name   string
		logits []float64
	}{
		{"mixed", []float64{2.5, -1.0, 0.0, 3.3, -2.2}},
		{"all equal", []float64{1, 1, 1, 1, 1}},
		{"large spread", []float64{100, 0, -100, 50, -50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vector, err := Softmax(tc.logits)
			require.NoError(t, err)

			sum := 0.0
			for _, v := range vector {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
				sum += v
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestSoftmax_RejectsWrongLength(t *testing.T) {
	_, err := Softmax([]float64{1, 2, 3})
	assert.Error(t, err)

	_, err = Softmax(make([]float64, types.NumLabels+1))
	assert.Error(t, err)
}

func TestTruncateTokens(t *testing.T) {
	assert.Equal(t, "a b c", TruncateTokens("a b c", 5))
	assert.Equal(t, "a b", TruncateTokens("a b c", 2))
	assert.Equal(t, "", TruncateTokens("", 10))
}
