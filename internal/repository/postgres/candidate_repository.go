package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/candidate"
)

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

const candidateColumns = `id, name, email, phone, skills, created_at, updated_at`

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO candidates (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, c.Phone, pq.Array(c.Skills), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create candidate", err)
	}
	return &c, nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id common.UUID) (*candidate.Candidate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	return scanCandidate(row)
}

func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*candidate.Candidate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanCandidate(row)
}

func (r *CandidateRepository) List(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidates", err)
	}
	defer rows.Close()
	var items []candidate.Candidate
	for rows.Next() {
		var c candidate.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, pq.Array(&c.Skills), &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan candidate", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidates", err)
	}
	return items, nil
}

func scanCandidate(row *sql.Row) (*candidate.Candidate, error) {
	var c candidate.Candidate
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, pq.Array(&c.Skills), &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "candidate not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load candidate", err)
	}
	return &c, nil
}
