package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/Daisy2077/ICS4U/core/school"
)

type studentRepository struct {
	db *DB
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) ids() []string {
	ids := make([]string, 0, len(repo.db.student.table))
	for id := range repo.db.student.table {
		ids = append(ids, id)
	}
	return ids
}

func (repo *studentRepository) CreateStudent(_ context.Context, std school.Student) (school.Student, error) {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	std.ID = repo.db.nextID(repo.ids())
	repo.db.student.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]school.Student, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	students := make([]school.Student, 0, len(repo.db.student.table))
	for _, std := range repo.db.student.table {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool {
		li := strings.ToLower(students[i].LastName)
		lj := strings.ToLower(students[j].LastName)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(students[i].FirstName) < strings.ToLower(students[j].FirstName)
	})
	return students, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id string) (school.Student, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	if std, ok := repo.db.student.table[id]; ok {
		return *std, nil
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std school.Student) (school.Student, error) {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	if _, ok := repo.db.student.table[std.ID]; !ok {
		return school.Student{}, school.ErrStudentNotFound
	}
	repo.db.student.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) DeleteStudentByID(_ context.Context, id string) error {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	if _, ok := repo.db.student.table[id]; !ok {
		return school.ErrStudentNotFound
	}
	delete(repo.db.student.table, id)
	return nil
}
