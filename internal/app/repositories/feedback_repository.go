package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/pkg/dberrors"
	"github.com/yigit/coursefeedback/internal/pkg/logger"
)

var feedbackColumns = []string{"id", "student_email", "course_code", "feedback"}

// PostgresFeedbackRepository handles feedback database operations
type PostgresFeedbackRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new PostgresFeedbackRepository
func NewFeedbackRepository(db *pgxpool.Pool) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	f := &models.Feedback{}
	if err := row.Scan(&f.ID, &f.StudentEmail, &f.CourseCode, &f.Feedback); err != nil {
		return nil, err
	}
	return f, nil
}

// Create inserts a feedback entry; the ID is assigned by the caller
func (r *PostgresFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	sql, args, err := r.sb.Insert("feedback").
		Columns(feedbackColumns...).
		Values(feedback.ID, feedback.StudentEmail, feedback.CourseCode, feedback.Feedback).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create feedback SQL")
		return fmt.Errorf("failed to build create feedback query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		logger.Error().Err(err).Str("courseCode", feedback.CourseCode).Msg("Error executing create feedback query")
		return fmt.Errorf("error creating feedback: %w", err)
	}

	return nil
}

// ListByCourse retrieves the feedback left for a course, oldest first
func (r *PostgresFeedbackRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error) {
	sql, args, err := r.sb.Select(feedbackColumns...).
		From("feedback").
		Where(squirrel.Eq{"course_code": courseCode}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list feedback SQL")
		return nil, fmt.Errorf("failed to build list feedback query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseCode", courseCode).Msg("Error executing list feedback query")
		return nil, fmt.Errorf("error querying feedback: %w", err)
	}
	defer rows.Close()

	entries := []*models.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning feedback row: %w", err)
		}
		entries = append(entries, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return entries, nil
}

// UpdateText replaces the feedback text of one entry
func (r *PostgresFeedbackRepository) UpdateText(ctx context.Context, id, text string) (*models.Feedback, error) {
	sql, args, err := r.sb.Update("feedback").
		Set("feedback", text).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, student_email, course_code, feedback").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update feedback SQL")
		return nil, fmt.Errorf("failed to build update feedback query: %w", err)
	}

	f, err := scanFeedback(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("feedbackID", id).Msg("Error executing update feedback query")
		return nil, fmt.Errorf("error updating feedback: %w", err)
	}

	return f, nil
}

// Delete removes one feedback entry
func (r *PostgresFeedbackRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("feedback").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete feedback SQL")
		return fmt.Errorf("failed to build delete feedback query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("feedbackID", id).Msg("Error executing delete feedback query")
		return fmt.Errorf("error deleting feedback: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteByCourse removes every entry for a course and reports how many were removed
func (r *PostgresFeedbackRepository) DeleteByCourse(ctx context.Context, courseCode string) (int64, error) {
	sql, args, err := r.sb.Delete("feedback").
		Where(squirrel.Eq{"course_code": courseCode}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course feedback SQL")
		return 0, fmt.Errorf("failed to build delete course feedback query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseCode", courseCode).Msg("Error executing delete course feedback query")
		return 0, fmt.Errorf("error deleting course feedback: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
