package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/Daisy2077/ICS4U/core/school"
)

type courseRepository struct {
	db *DB
}

var _ school.CourseRepository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) ids() []string {
	ids := make([]string, 0, len(repo.db.course.table))
	for id := range repo.db.course.table {
		ids = append(ids, id)
	}
	return ids
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs school.Course) (school.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	crs.ID = repo.db.nextID(repo.ids())
	repo.db.course.table[crs.ID] = &courseRecord{course: crs}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(_ context.Context) ([]school.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	courses := make([]school.Course, 0, len(repo.db.course.table))
	for _, rec := range repo.db.course.table {
		courses = append(courses, rec.course)
	}
	sort.Slice(courses, func(i, j int) bool {
		return strings.ToLower(courses[i].Code) < strings.ToLower(courses[j].Code)
	})
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (school.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	if rec, ok := repo.db.course.table[id]; ok {
		return rec.course, nil
	}
	return school.Course{}, school.ErrCourseNotFound
}

func (repo *courseRepository) QueryCoursesByTeacherID(_ context.Context, teacherID string) ([]school.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	var courses []school.Course
	for _, rec := range repo.db.course.table {
		if rec.course.TeacherID == teacherID {
			courses = append(courses, rec.course)
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		return strings.ToLower(courses[i].Code) < strings.ToLower(courses[j].Code)
	})
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, crs school.Course) (school.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	rec, ok := repo.db.course.table[crs.ID]
	if !ok {
		return school.Course{}, school.ErrCourseNotFound
	}
	rec.course = crs
	return crs, nil
}

func (repo *courseRepository) DeleteCourseByID(_ context.Context, id string) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	if _, ok := repo.db.course.table[id]; !ok {
		return school.ErrCourseNotFound
	}
	delete(repo.db.course.table, id)
	return nil
}
