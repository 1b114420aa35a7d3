// Package types provides type definitions for structured data used throughout the cv-analyzer system.
package types

import (
	"github.com/google/uuid"
)

// Accepted media types for uploaded CV documents. Anything else is skipped
// with a warning rather than scored.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// NumLabels is the size of the classification head of the pretrained model.
// The first two positions carry the skills and experience probabilities.
const NumLabels = 5

// Document is one uploaded CV: the raw bytes plus the declared media type.
// It is consumed exactly once by text extraction and then discarded.
type Document struct {
	Name      string
	MediaType string
	Data      []byte
}

// ScoreVector is the classifier's probability distribution over the five
// labels after normalization. Components sum to 1 and each lies in [0,1].
type ScoreVector [NumLabels]float64

// CandidateResult holds one candidate's extracted text and derived scores.
// All scores are percentages in [0,100]. Immutable once computed.
type CandidateResult struct {
	ID              uuid.UUID `json:"id"`
	FileName        string    `json:"file_name"`
	Text            string    `json:"-"`
	TotalScore      float64   `json:"total_score"`
	SkillsScore     float64   `json:"skills_score"`
	ExperienceScore float64   `json:"experience_score"`
}

// RankedSet is an upload-ordered sequence of candidate results plus the index
// of the best candidate (maximum total score, first occurrence on ties).
type RankedSet struct {
	Candidates []CandidateResult `json:"candidates"`
	Best       int               `json:"best"`
}

// BestCandidate returns the designated best element of the set.
func (rs *RankedSet) BestCandidate() CandidateResult {
	return rs.Candidates[rs.Best]
}

// SkippedFile records an uploaded file that was excluded from scoring, with a
// user-visible reason (unsupported media type).
type SkippedFile struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// FailedFile records a candidate whose extraction or classification failed.
// Failures are isolated per candidate and never abort the batch.
type FailedFile struct {
	FileName string `json:"file_name"`
	Stage    string `json:"stage"` // "extract" or "classify"
	Reason   string `json:"reason"`
}
