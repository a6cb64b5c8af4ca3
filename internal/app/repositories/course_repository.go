package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
	"github.com/campusgrid/campusgrid/internal/pkg/dberrors"
)

const coursesPKey = "courses_pkey"

// CourseFilter narrows course list queries.
type CourseFilter struct {
	Department string
	Instructor string
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new course. A duplicate course id returns
// apperrors.ErrCourseAlreadyExists.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_id", "name", "description", "credit", "instructor",
			"department", "start_date", "end_date", "schedule").
		Values(course.CourseID, course.Name, course.Description, course.Credit,
			course.Instructor, course.Department, course.StartDate, course.EndDate, course.Schedule).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, coursesPKey) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by its string key.
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	sql, args, err := r.courseSelect().
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.CourseID, &course.Name, &course.Description, &course.Credit,
		&course.Instructor, &course.Department, &course.StartDate, &course.EndDate, &course.Schedule,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves a page of courses matching the filter, plus the total count.
func (r *CourseRepository) GetAll(ctx context.Context, filter CourseFilter, offset uint64, limit int) ([]*models.Course, int64, error) {
	listQuery := r.courseSelect().OrderBy("course_id").Offset(offset).Limit(uint64(limit))
	countQuery := r.sb.Select("COUNT(*)").From("courses")

	if filter.Department != "" {
		cond := squirrel.Eq{"department": filter.Department}
		listQuery = listQuery.Where(cond)
		countQuery = countQuery.Where(cond)
	}
	if filter.Instructor != "" {
		cond := squirrel.Eq{"instructor": filter.Instructor}
		listQuery = listQuery.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	sql, args, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.CourseID, &course.Name, &course.Description, &course.Credit,
			&course.Instructor, &course.Department, &course.StartDate, &course.EndDate, &course.Schedule,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	return courses, total, nil
}

// Update rewrites the mutable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Set("credit", course.Credit).
		Set("instructor", course.Instructor).
		Set("department", course.Department).
		Set("start_date", course.StartDate).
		Set("end_date", course.EndDate).
		Set("schedule", course.Schedule).
		Where(squirrel.Eq{"course_id": course.CourseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course. A foreign key violation from remaining enrollments
// maps to apperrors.ErrCourseHasEnrollments so the service-level pre-check
// cannot be raced past.
func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseHasEnrollments
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

func (r *CourseRepository) courseSelect() squirrel.SelectBuilder {
	return r.sb.Select("course_id", "name", "description", "credit", "instructor",
		"department", "start_date", "end_date", "schedule").
		From("courses")
}
