package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, candidate_id, job_id, current_stage, status,
	confirmation_type, confirmation_state, confirmation_requested_at, confirmation_deadline, confirmation_resolved_at,
	created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.JobApplication) (*application.JobApplication, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
		app.UpdatedAt = now
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	confType, confState, confRequested, confDeadline, confResolved := confirmationColumns(app.Confirmation)
	_, err = tx.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.CandidateID, app.JobID, app.CurrentStage, app.Status,
		confType, confState, confRequested, confDeadline, confResolved,
		app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	if err := saveHistory(ctx, tx, &app); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app *application.JobApplication) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	confType, confState, confRequested, confDeadline, confResolved := confirmationColumns(app.Confirmation)
	result, err := tx.ExecContext(ctx, `UPDATE applications SET current_stage = $1, status = $2,
		confirmation_type = $3, confirmation_state = $4, confirmation_requested_at = $5,
		confirmation_deadline = $6, confirmation_resolved_at = $7, updated_at = $8
		WHERE id = $9`,
		app.CurrentStage, app.Status, confType, confState, confRequested, confDeadline, confResolved,
		app.UpdatedAt, app.ID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if err := saveHistory(ctx, tx, app); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return nil
}

// saveHistory upserts by (application_id, position); history rows are never
// deleted, closed entries only gain an end date and mail flags.
func saveHistory(ctx context.Context, tx *sql.Tx, app *application.JobApplication) error {
	for i, entry := range app.StageHistory {
		_, err := tx.ExecContext(ctx, `INSERT INTO application_stage_history
			(application_id, position, stage, started_at, ended_at, reason, actor_id, mail_sent, mail_confirmed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (application_id, position) DO UPDATE
				SET ended_at = EXCLUDED.ended_at,
				    reason = EXCLUDED.reason,
				    mail_sent = EXCLUDED.mail_sent,
				    mail_confirmed = EXCLUDED.mail_confirmed`,
			app.ID, i, entry.Stage, entry.StartedAt, entry.EndedAt, entry.Reason, entry.ActorID, entry.MailSent, entry.MailConfirmed)
		if err != nil {
			return common.NewError(common.CodeInternal, "failed to save stage history", err)
		}
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.JobApplication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*application.JobApplication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND candidate_id = $2`, jobID, candidateID)
	app, err := scanApplication(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]application.JobApplication, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY created_at DESC`)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.JobApplication, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.JobApplication, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

func (r *ApplicationRepository) ListWithPendingConfirmation(ctx context.Context) ([]application.JobApplication, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE confirmation_state = $1 AND status = $2 ORDER BY confirmation_deadline`,
		application.ConfirmationPending, application.StatusActive)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.JobApplication, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	for i := range items {
		if err := r.loadHistory(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *ApplicationRepository) loadHistory(ctx context.Context, app *application.JobApplication) error {
	rows, err := r.db.QueryContext(ctx, `SELECT stage, started_at, ended_at, reason, actor_id, mail_sent, mail_confirmed
		FROM application_stage_history WHERE application_id = $1 ORDER BY position`, app.ID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to load stage history", err)
	}
	defer rows.Close()
	for rows.Next() {
		var entry application.StageHistoryEntry
		var ended sql.NullTime
		if err := rows.Scan(&entry.Stage, &entry.StartedAt, &ended, &entry.Reason, &entry.ActorID, &entry.MailSent, &entry.MailConfirmed); err != nil {
			return common.NewError(common.CodeInternal, "failed to scan stage history", err)
		}
		if ended.Valid {
			endedAt := ended.Time
			entry.EndedAt = &endedAt
		}
		app.StageHistory = append(app.StageHistory, entry)
	}
	if err := rows.Err(); err != nil {
		return common.NewError(common.CodeInternal, "failed to load stage history", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*application.JobApplication, error) {
	var app application.JobApplication
	var confType, confState sql.NullString
	var confRequested, confDeadline, confResolved sql.NullTime
	err := row.Scan(&app.ID, &app.CandidateID, &app.JobID, &app.CurrentStage, &app.Status,
		&confType, &confState, &confRequested, &confDeadline, &confResolved,
		&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if confState.Valid {
		conf := &application.Confirmation{
			Type:        confType.String,
			State:       application.ConfirmationState(confState.String),
			RequestedAt: confRequested.Time,
			Deadline:    confDeadline.Time,
		}
		if confResolved.Valid {
			resolved := confResolved.Time
			conf.ResolvedAt = &resolved
		}
		app.Confirmation = conf
	}
	return &app, nil
}

func confirmationColumns(conf *application.Confirmation) (confType, confState sql.NullString, requestedAt, deadline, resolvedAt sql.NullTime) {
	if conf == nil {
		return
	}
	confType = sql.NullString{String: conf.Type, Valid: true}
	confState = sql.NullString{String: string(conf.State), Valid: true}
	requestedAt = sql.NullTime{Time: conf.RequestedAt, Valid: true}
	deadline = sql.NullTime{Time: conf.Deadline, Valid: true}
	if conf.ResolvedAt != nil {
		resolvedAt = sql.NullTime{Time: *conf.ResolvedAt, Valid: true}
	}
	return
}
