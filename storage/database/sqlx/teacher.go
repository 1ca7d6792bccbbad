package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
)

type teacherRepository struct {
	db core.DBExecutor
}

var _ school.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db core.DBExecutor) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch school.Teacher) (school.Teacher, error) {
	tch.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO teacher (id, first_name, last_name, employee_number, email, department, room, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :employee_number, :email, :department, :room, :created_at, :updated_at)`,
		tch,
	)
	if err != nil {
		return school.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]school.Teacher, error) {
	teachers := make([]school.Teacher, 0)
	err := repo.db.SelectContext(ctx, &teachers, `
		SELECT * FROM teacher ORDER BY lower(last_name), lower(first_name)`)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (school.Teacher, error) {
	if err := checkID(id); err != nil {
		return school.Teacher{}, err
	}
	var tch school.Teacher
	if err := repo.db.GetContext(ctx, &tch, `SELECT * FROM teacher WHERE id = $1`, id); err != nil {
		return school.Teacher{}, trapNoRowsErr(err, school.ErrTeacherNotFound, "getting teacher")
	}
	return tch, nil
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, tch school.Teacher) (school.Teacher, error) {
	if err := checkID(tch.ID); err != nil {
		return school.Teacher{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE teacher
		SET first_name = :first_name, last_name = :last_name, employee_number = :employee_number,
			email = :email, department = :department, room = :room, updated_at = :updated_at
		WHERE id = :id`,
		tch,
	)
	if err != nil {
		return school.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Teacher{}, school.ErrTeacherNotFound
	}
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacherByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM teacher WHERE id = $1`, id)
	if err != nil {
		return trapFKViolation(err, school.ErrTeacherHasCourses, "deleting teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrTeacherNotFound
	}
	return nil
}
