// Package scoring derives per-candidate skills, experience, and total scores
// from classifier output.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/classify"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// Default weights and limits for scoring
const (
	DefaultSkillsWeight     = 0.5
	DefaultExperienceWeight = 0.5
	DefaultMaxTokens        = 512

	// Positions of the interpreted labels in the classifier head
	skillsIndex     = 0
	experienceIndex = 1
)

// weightTolerance bounds the acceptable drift of the weight sum from 1.0.
const weightTolerance = 1e-9

// Weights holds the relative importance of skills vs experience in the total
// score. The two must sum to 1.
type Weights struct {
	Skills     float64
	Experience float64
}

// DefaultWeights returns the equal 50/50 weighting used for ranking.
func DefaultWeights() Weights {
	return Weights{Skills: DefaultSkillsWeight, Experience: DefaultExperienceWeight}
}

// Validate checks that each weight lies in [0,1] and that they sum to 1.
func (w Weights) Validate() error {
	if w.Skills < 0 || w.Skills > 1 || w.Experience < 0 || w.Experience > 1 {
		return fmt.Errorf("weights must be in [0,1]: skills=%v experience=%v", w.Skills, w.Experience)
	}
	if math.Abs(w.Skills+w.Experience-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1: skills=%v experience=%v", w.Skills, w.Experience)
	}
	return nil
}

// Scorer scores candidate texts through the external classifier.
type Scorer struct {
	classifier classify.Client
	weights    Weights
	maxTokens  int
}

// NewScorer creates a scorer. Zero-value weights select the default 50/50
// split; maxTokens <= 0 selects the default classifier input limit.
func NewScorer(classifier classify.Client, weights Weights, maxTokens int) (*Scorer, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Scorer{
		classifier: classifier,
		weights:    weights,
		maxTokens:  maxTokens,
	}, nil
}

// Score classifies one candidate's text and derives its scores. Text beyond
// the token limit is silently discarded before classification; this mirrors
// the model's input window and is a precision limitation, not an error.
func (s *Scorer) Score(ctx context.Context, fileName, text string) (types.CandidateResult, error) {
	logits, err := s.classifier.Logits(ctx, TruncateTokens(text, s.maxTokens))
	if err != nil {
		return types.CandidateResult{}, err
	}

	vector, err := Softmax(logits)
	if err != nil {
		return types.CandidateResult{}, &classify.Error{Err: err}
	}

	skills := vector[skillsIndex] * 100
	experience := vector[experienceIndex] * 100

	return types.CandidateResult{
		ID:              uuid.New(),
		FileName:        fileName,
		Text:            text,
		SkillsScore:     skills,
		ExperienceScore: experience,
		TotalScore:      s.weights.Skills*skills + s.weights.Experience*experience,
	}, nil
}

// Softmax applies the normalized exponential transform across the raw
// scores, yielding a distribution that sums to 1.
func Softmax(logits []float64) (types.ScoreVector, error) {
	var vector types.ScoreVector
	if len(logits) != types.NumLabels {
		return vector, fmt.Errorf("expected %d logits, got %d", types.NumLabels, len(logits))
	}

	// Shift by the max logit for numerical stability
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}

	sum := 0.0
	for i, l := range logits {
		vector[i] = math.Exp(l - maxLogit)
		sum += vector[i]
	}
	for i := range vector {
		vector[i] /= sum
	}

	return vector, nil
}

// TruncateTokens keeps at most max whitespace-delimited tokens of s. This
// approximates the classifier tokenizer's input window; the inference
// endpoint applies the exact subword limit.
func TruncateTokens(s string, max int) string {
	fields := strings.Fields(s)
	if len(fields) <= max {
		return s
	}
	return strings.Join(fields[:max], " ")
}
