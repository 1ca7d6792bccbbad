package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/Daisy2077/ICS4U/core/school"
)

type teacherRepository struct {
	db *DB
}

var _ school.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) ids() []string {
	ids := make([]string, 0, len(repo.db.teacher.table))
	for id := range repo.db.teacher.table {
		ids = append(ids, id)
	}
	return ids
}

func (repo *teacherRepository) CreateTeacher(_ context.Context, tch school.Teacher) (school.Teacher, error) {
	repo.db.teacher.Lock()
	defer repo.db.teacher.Unlock()

	tch.ID = repo.db.nextID(repo.ids())
	repo.db.teacher.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers(_ context.Context) ([]school.Teacher, error) {
	repo.db.teacher.RLock()
	defer repo.db.teacher.RUnlock()

	teachers := make([]school.Teacher, 0, len(repo.db.teacher.table))
	for _, tch := range repo.db.teacher.table {
		teachers = append(teachers, *tch)
	}
	sort.Slice(teachers, func(i, j int) bool {
		li := strings.ToLower(teachers[i].LastName)
		lj := strings.ToLower(teachers[j].LastName)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(teachers[i].FirstName) < strings.ToLower(teachers[j].FirstName)
	})
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(_ context.Context, id string) (school.Teacher, error) {
	repo.db.teacher.RLock()
	defer repo.db.teacher.RUnlock()

	if tch, ok := repo.db.teacher.table[id]; ok {
		return *tch, nil
	}
	return school.Teacher{}, school.ErrTeacherNotFound
}

func (repo *teacherRepository) UpdateTeacher(_ context.Context, tch school.Teacher) (school.Teacher, error) {
	repo.db.teacher.Lock()
	defer repo.db.teacher.Unlock()

	if _, ok := repo.db.teacher.table[tch.ID]; !ok {
		return school.Teacher{}, school.ErrTeacherNotFound
	}
	repo.db.teacher.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacherByID(_ context.Context, id string) error {
	repo.db.teacher.Lock()
	defer repo.db.teacher.Unlock()

	if _, ok := repo.db.teacher.table[id]; !ok {
		return school.ErrTeacherNotFound
	}
	delete(repo.db.teacher.table, id)
	return nil
}
