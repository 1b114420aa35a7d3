package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/present"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// SaveBatch persists one analyzed batch and its candidates. Ranked may be
// nil for batches where nothing could be scored.
func (db *DB) SaveBatch(ctx context.Context, batchID uuid.UUID, createdAt time.Time, ranked *types.RankedSet) error {
	var bestPosition *int
	candidateCount := 0
	if ranked != nil {
		candidateCount = len(ranked.Candidates)
		best := ranked.Best
		bestPosition = &best
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO analysis_batches (id, created_at, candidate_count, best_position)
		 VALUES ($1, $2, $3, $4)`,
		batchID, createdAt, candidateCount, bestPosition,
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	if ranked != nil {
		for i, candidate := range ranked.Candidates {
			_, err = tx.Exec(ctx,
				`INSERT INTO batch_candidates
				 (id, batch_id, position, file_name, snippet, total_score, skills_score, experience_score)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				candidate.ID, batchID, i, candidate.FileName, present.Snippet(candidate.Text),
				candidate.TotalScore, candidate.SkillsScore, candidate.ExperienceScore,
			)
			if err != nil {
				return fmt.Errorf("failed to insert candidate %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// ListBatches returns stored batches, newest first.
func (db *DB) ListBatches(ctx context.Context, limit int) ([]BatchRow, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, created_at, candidate_count, best_position
		 FROM analysis_batches
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []BatchRow
	for rows.Next() {
		var row BatchRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.CandidateCount, &row.BestPosition); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, row)
	}
	return batches, rows.Err()
}

// GetBatchCandidates returns the stored candidates of one batch in upload
// order.
func (db *DB) GetBatchCandidates(ctx context.Context, batchID uuid.UUID) ([]CandidateRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, batch_id, position, file_name, snippet, total_score, skills_score, experience_score
		 FROM batch_candidates
		 WHERE batch_id = $1
		 ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch candidates: %w", err)
	}
	defer rows.Close()

	var candidates []CandidateRow
	for rows.Next() {
		var row CandidateRow
		if err := rows.Scan(&row.ID, &row.BatchID, &row.Position, &row.FileName,
			&row.Snippet, &row.TotalScore, &row.SkillsScore, &row.ExperienceScore); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, row)
	}
	return candidates, rows.Err()
}

// DeleteBatch removes one batch and, via cascade, its candidates.
func (db *DB) DeleteBatch(ctx context.Context, batchID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM analysis_batches WHERE id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	return nil
}
