package inmemdb

import (
	"context"
	"sort"

	"github.com/Daisy2077/ICS4U/core/school"
)

type testRepository struct {
	db *DB
}

var _ school.TestRepository = (*testRepository)(nil) // interface compliance check

func NewTestRepository(db *DB) *testRepository {
	return &testRepository{db: db}
}

func (repo *testRepository) embedded() bool { return repo.db.opts.EmbedTests }

// sortByDate orders flat-collection listings; dates are opaque strings so the
// comparison is lexicographic.
func sortByDate(tests []school.Test) {
	sort.Slice(tests, func(i, j int) bool {
		if tests[i].Date != tests[j].Date {
			return tests[i].Date < tests[j].Date
		}
		return idLess(tests[i].ID, tests[j].ID)
	})
}

// sortByID orders embedded-mode listings.
func sortByID(tests []school.Test) {
	sort.Slice(tests, func(i, j int) bool { return idLess(tests[i].ID, tests[j].ID) })
}

func (repo *testRepository) CreateTest(ctx context.Context, tst school.Test) (school.Test, error) {
	if repo.embedded() {
		return repo.createEmbedded(ctx, tst)
	}

	repo.db.test.Lock()
	defer repo.db.test.Unlock()

	ids := make([]string, 0, len(repo.db.test.table))
	for id := range repo.db.test.table {
		ids = append(ids, id)
	}
	tst.ID = repo.db.nextID(ids)
	repo.db.test.table[tst.ID] = &tst
	return tst, nil
}

func (repo *testRepository) QueryAllTests(ctx context.Context) ([]school.Test, error) {
	if repo.embedded() {
		repo.db.course.RLock()
		defer repo.db.course.RUnlock()

		var tests []school.Test
		for _, rec := range repo.db.course.table {
			tests = append(tests, rec.tests...)
		}
		sortByID(tests)
		return tests, nil
	}

	repo.db.test.RLock()
	defer repo.db.test.RUnlock()

	tests := make([]school.Test, 0, len(repo.db.test.table))
	for _, tst := range repo.db.test.table {
		tests = append(tests, *tst)
	}
	sortByDate(tests)
	return tests, nil
}

func (repo *testRepository) GetTestByID(ctx context.Context, id string) (school.Test, error) {
	if repo.embedded() {
		repo.db.course.RLock()
		defer repo.db.course.RUnlock()

		if tst, _, ok := repo.findEmbedded(id); ok {
			return tst, nil
		}
		return school.Test{}, school.ErrTestNotFound
	}

	repo.db.test.RLock()
	defer repo.db.test.RUnlock()

	if tst, ok := repo.db.test.table[id]; ok {
		return *tst, nil
	}
	return school.Test{}, school.ErrTestNotFound
}

func (repo *testRepository) QueryTestsByStudentID(ctx context.Context, studentID string) ([]school.Test, error) {
	return repo.filter(func(tst school.Test) bool { return tst.StudentID == studentID })
}

func (repo *testRepository) QueryTestsByCourseID(ctx context.Context, courseID string) ([]school.Test, error) {
	return repo.filter(func(tst school.Test) bool { return tst.CourseID == courseID })
}

func (repo *testRepository) UpdateTest(ctx context.Context, tst school.Test) (school.Test, error) {
	if repo.embedded() {
		return repo.updateEmbedded(ctx, tst)
	}

	repo.db.test.Lock()
	defer repo.db.test.Unlock()

	if _, ok := repo.db.test.table[tst.ID]; !ok {
		return school.Test{}, school.ErrTestNotFound
	}
	repo.db.test.table[tst.ID] = &tst
	return tst, nil
}

func (repo *testRepository) DeleteTestByID(ctx context.Context, id string) error {
	if repo.embedded() {
		repo.db.course.Lock()
		defer repo.db.course.Unlock()

		_, rec, ok := repo.findEmbedded(id)
		if !ok {
			return school.ErrTestNotFound
		}
		tests := make([]school.Test, 0, len(rec.tests)-1)
		for _, t := range rec.tests {
			if t.ID != id {
				tests = append(tests, t)
			}
		}
		rec.tests = tests
		return nil
	}

	repo.db.test.Lock()
	defer repo.db.test.Unlock()

	if _, ok := repo.db.test.table[id]; !ok {
		return school.ErrTestNotFound
	}
	delete(repo.db.test.table, id)
	return nil
}

// embedded mode

// findEmbedded scans every course's test sequence; tests are independently
// addressable by identifier across the whole course collection. Callers must
// hold the course table lock.
func (repo *testRepository) findEmbedded(id string) (school.Test, *courseRecord, bool) {
	for _, rec := range repo.db.course.table {
		for _, tst := range rec.tests {
			if tst.ID == id {
				return tst, rec, true
			}
		}
	}
	return school.Test{}, nil, false
}

// embeddedIDs gathers test ids across all courses: the sequential counter is
// global, not per-course.
func (repo *testRepository) embeddedIDs() []string {
	var ids []string
	for _, rec := range repo.db.course.table {
		for _, tst := range rec.tests {
			ids = append(ids, tst.ID)
		}
	}
	return ids
}

func (repo *testRepository) createEmbedded(_ context.Context, tst school.Test) (school.Test, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	rec, ok := repo.db.course.table[tst.CourseID]
	if !ok {
		return school.Test{}, school.ErrCourseNotFound
	}
	tst.ID = repo.db.nextID(repo.embeddedIDs())

	// whole-sequence rewrite, like a document store persisting the parent
	tests := make([]school.Test, 0, len(rec.tests)+1)
	tests = append(tests, rec.tests...)
	tests = append(tests, tst)
	rec.tests = tests
	return tst, nil
}

func (repo *testRepository) updateEmbedded(_ context.Context, tst school.Test) (school.Test, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	_, rec, ok := repo.findEmbedded(tst.ID)
	if !ok {
		return school.Test{}, school.ErrTestNotFound
	}

	if rec.course.ID != tst.CourseID {
		// the test moves to another course's sequence
		dst, ok := repo.db.course.table[tst.CourseID]
		if !ok {
			return school.Test{}, school.ErrCourseNotFound
		}
		kept := make([]school.Test, 0, len(rec.tests)-1)
		for _, t := range rec.tests {
			if t.ID != tst.ID {
				kept = append(kept, t)
			}
		}
		rec.tests = kept
		dst.tests = append(append([]school.Test{}, dst.tests...), tst)
		return tst, nil
	}

	tests := make([]school.Test, len(rec.tests))
	for i, t := range rec.tests {
		if t.ID == tst.ID {
			tests[i] = tst
		} else {
			tests[i] = t
		}
	}
	rec.tests = tests
	return tst, nil
}

func (repo *testRepository) filter(keep func(school.Test) bool) ([]school.Test, error) {
	if repo.embedded() {
		repo.db.course.RLock()
		defer repo.db.course.RUnlock()

		var tests []school.Test
		for _, rec := range repo.db.course.table {
			for _, tst := range rec.tests {
				if keep(tst) {
					tests = append(tests, tst)
				}
			}
		}
		sortByID(tests)
		return tests, nil
	}

	repo.db.test.RLock()
	defer repo.db.test.RUnlock()

	var tests []school.Test
	for _, tst := range repo.db.test.table {
		if keep(*tst) {
			tests = append(tests, *tst)
		}
	}
	sortByDate(tests)
	return tests, nil
}
