package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
)

type courseRepository struct {
	db core.DBExecutor
}

var _ school.CourseRepository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db core.DBExecutor) *courseRepository {
	return &courseRepository{db: db}
}

// teacher_id is NULL in the schema when the course has no teacher; the model
// carries it as an empty string, hence the NULLIF/COALESCE pairs.
const courseSelect = `
	SELECT id, code, name, COALESCE(teacher_id, '') AS teacher_id, semester, room, schedule, created_at, updated_at
	FROM course`

func (repo *courseRepository) CreateCourse(ctx context.Context, crs school.Course) (school.Course, error) {
	crs.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO course (id, code, name, teacher_id, semester, room, schedule, created_at, updated_at)
		VALUES (:id, :code, :name, NULLIF(:teacher_id, ''), :semester, :room, :schedule, :created_at, :updated_at)`,
		crs,
	)
	if err != nil {
		return school.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]school.Course, error) {
	courses := make([]school.Course, 0)
	err := repo.db.SelectContext(ctx, &courses, courseSelect+` ORDER BY lower(code)`)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (school.Course, error) {
	if err := checkID(id); err != nil {
		return school.Course{}, err
	}
	var crs school.Course
	if err := repo.db.GetContext(ctx, &crs, courseSelect+` WHERE id = $1`, id); err != nil {
		return school.Course{}, trapNoRowsErr(err, school.ErrCourseNotFound, "getting course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryCoursesByTeacherID(ctx context.Context, teacherID string) ([]school.Course, error) {
	if err := checkID(teacherID); err != nil {
		return nil, err
	}
	courses := make([]school.Course, 0)
	err := repo.db.SelectContext(ctx, &courses, courseSelect+` WHERE teacher_id = $1 ORDER BY lower(code)`, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher courses")
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs school.Course) (school.Course, error) {
	if err := checkID(crs.ID); err != nil {
		return school.Course{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE course
		SET code = :code, name = :name, teacher_id = NULLIF(:teacher_id, ''),
			semester = :semester, room = :room, schedule = :schedule, updated_at = :updated_at
		WHERE id = :id`,
		crs,
	)
	if err != nil {
		return school.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Course{}, school.ErrCourseNotFound
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCourseByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM course WHERE id = $1`, id)
	if err != nil {
		return trapFKViolation(err, school.ErrCourseHasTests, "deleting course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrCourseNotFound
	}
	return nil
}
