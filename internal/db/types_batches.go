package db

import (
	"time"

	"github.com/google/uuid"
)

// BatchRow mirrors the analysis_batches table.
type BatchRow struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	CandidateCount int       `json:"candidate_count"`
	BestPosition   *int      `json:"best_position,omitempty"`
}

// CandidateRow mirrors the batch_candidates table. Only the snippet of the
// extracted text is persisted, not the full document content.
type CandidateRow struct {
	ID              uuid.UUID `json:"id"`
	BatchID         uuid.UUID `json:"batch_id"`
	Position        int       `json:"position"`
	FileName        string    `json:"file_name"`
	Snippet         string    `json:"snippet"`
	TotalScore      float64   `json:"total_score"`
	SkillsScore     float64   `json:"skills_score"`
	ExperienceScore float64   `json:"experience_score"`
}
