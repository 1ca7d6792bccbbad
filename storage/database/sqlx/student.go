package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
)

type studentRepository struct {
	db core.DBExecutor
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db core.DBExecutor) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std school.Student) (school.Student, error) {
	std.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO student (id, first_name, last_name, grade, student_number, homeroom, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :grade, :student_number, :homeroom, :created_at, :updated_at)`,
		std,
	)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]school.Student, error) {
	students := make([]school.Student, 0)
	err := repo.db.SelectContext(ctx, &students, `
		SELECT * FROM student ORDER BY lower(last_name), lower(first_name)`)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (school.Student, error) {
	if err := checkID(id); err != nil {
		return school.Student{}, err
	}
	var std school.Student
	if err := repo.db.GetContext(ctx, &std, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return school.Student{}, trapNoRowsErr(err, school.ErrStudentNotFound, "getting student")
	}
	return std, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std school.Student) (school.Student, error) {
	if err := checkID(std.ID); err != nil {
		return school.Student{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE student
		SET first_name = :first_name, last_name = :last_name, grade = :grade,
			student_number = :student_number, homeroom = :homeroom, updated_at = :updated_at
		WHERE id = :id`,
		std,
	)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Student{}, school.ErrStudentNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudentByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id = $1`, id)
	if err != nil {
		return trapFKViolation(err, school.ErrStudentHasTests, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrStudentNotFound
	}
	return nil
}
