package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
)

type testRepository struct {
	db core.DBExecutor
}

var _ school.TestRepository = (*testRepository)(nil) // interface compliance check

func NewTestRepository(db core.DBExecutor) *testRepository {
	return &testRepository{db: db}
}

func (repo *testRepository) CreateTest(ctx context.Context, tst school.Test) (school.Test, error) {
	tst.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO test (id, student_id, course_id, name, date, mark, out_of, weight, created_at, updated_at)
		VALUES (:id, :student_id, :course_id, :name, :date, :mark, :out_of, :weight, :created_at, :updated_at)`,
		tst,
	)
	if err != nil {
		return school.Test{}, errors.Wrap(err, "inserting test")
	}
	return tst, nil
}

func (repo *testRepository) QueryAllTests(ctx context.Context) ([]school.Test, error) {
	tests := make([]school.Test, 0)
	err := repo.db.SelectContext(ctx, &tests, `SELECT * FROM test ORDER BY date, id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying tests")
	}
	return tests, nil
}

func (repo *testRepository) GetTestByID(ctx context.Context, id string) (school.Test, error) {
	if err := checkID(id); err != nil {
		return school.Test{}, err
	}
	var tst school.Test
	if err := repo.db.GetContext(ctx, &tst, `SELECT * FROM test WHERE id = $1`, id); err != nil {
		return school.Test{}, trapNoRowsErr(err, school.ErrTestNotFound, "getting test")
	}
	return tst, nil
}

func (repo *testRepository) QueryTestsByStudentID(ctx context.Context, studentID string) ([]school.Test, error) {
	if err := checkID(studentID); err != nil {
		return nil, err
	}
	tests := make([]school.Test, 0)
	err := repo.db.SelectContext(ctx, &tests, `
		SELECT * FROM test WHERE student_id = $1 ORDER BY date, id`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying student tests")
	}
	return tests, nil
}

func (repo *testRepository) QueryTestsByCourseID(ctx context.Context, courseID string) ([]school.Test, error) {
	if err := checkID(courseID); err != nil {
		return nil, err
	}
	tests := make([]school.Test, 0)
	err := repo.db.SelectContext(ctx, &tests, `
		SELECT * FROM test WHERE course_id = $1 ORDER BY date, id`, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying course tests")
	}
	return tests, nil
}

func (repo *testRepository) UpdateTest(ctx context.Context, tst school.Test) (school.Test, error) {
	if err := checkID(tst.ID); err != nil {
		return school.Test{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE test
		SET student_id = :student_id, course_id = :course_id, name = :name, date = :date,
			mark = :mark, out_of = :out_of, weight = :weight, updated_at = :updated_at
		WHERE id = :id`,
		tst,
	)
	if err != nil {
		return school.Test{}, errors.Wrap(err, "updating test")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Test{}, school.ErrTestNotFound
	}
	return tst, nil
}

func (repo *testRepository) DeleteTestByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM test WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting test")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrTestNotFound
	}
	return nil
}
