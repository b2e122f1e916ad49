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

var studentColumns = []string{"name", "email", "enrolled_courses"}

// PostgresStudentRepository handles student database operations
type PostgresStudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new PostgresStudentRepository
func NewStudentRepository(db *pgxpool.Pool) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	if err := row.Scan(&student.Name, &student.Email, &student.EnrolledCourses); err != nil {
		return nil, err
	}
	if student.EnrolledCourses == nil {
		student.EnrolledCourses = []string{}
	}
	return student, nil
}

// Create inserts a new student
func (r *PostgresStudentRepository) Create(ctx context.Context, student *models.Student) error {
	enrolled := student.EnrolledCourses
	if enrolled == nil {
		enrolled = []string{}
	}

	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(student.Name, student.Email, enrolled).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByEmail retrieves a student by email
func (r *PostgresStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by email: %w", err)
	}

	return student, nil
}

// List retrieves all students in registration order
func (r *PostgresStudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// AddEnrollment appends the course code in a single conditional UPDATE so concurrent
// enrollments of the same pair cannot both succeed.
func (r *PostgresStudentRepository) AddEnrollment(ctx context.Context, email, courseCode string) (*models.Student, error) {
	sql, args, err := r.addEnrollmentQuery(email, courseCode)
	if err != nil {
		logger.Error().Err(err).Msg("Error building enroll student SQL")
		return nil, fmt.Errorf("failed to build enroll student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("email", email).Str("courseCode", courseCode).Msg("Error executing enroll student query")
		return nil, fmt.Errorf("error enrolling student: %w", err)
	}

	// No row updated: either the student is gone or the code is already present.
	if _, err := r.GetByEmail(ctx, email); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyEnrolled
}

func (r *PostgresStudentRepository) addEnrollmentQuery(email, courseCode string) (string, []interface{}, error) {
	return r.sb.Update("students").
		Set("enrolled_courses", squirrel.Expr("array_append(enrolled_courses, ?::text)", courseCode)).
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Expr("NOT (?::text = ANY(enrolled_courses))", courseCode)).
		Suffix("RETURNING name, email, enrolled_courses").
		ToSql()
}
