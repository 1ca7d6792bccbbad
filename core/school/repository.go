package school

import "context"

// Repositories abstract the storage engine. Implementations must keep the
// documented listing orders stable across calls and return the package's
// sentinel errors for missing records and malformed identifiers.
type (
	StudentRepository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		// QueryAllStudents returns students ordered by last then first name.
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudentByID(ctx context.Context, id string) error
	}

	TeacherRepository interface {
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		// QueryAllTeachers returns teachers ordered by last then first name.
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacherByID(ctx context.Context, id string) (Teacher, error)
		UpdateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		DeleteTeacherByID(ctx context.Context, id string) error
	}

	CourseRepository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// QueryAllCourses returns courses ordered by code ascending.
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		QueryCoursesByTeacherID(ctx context.Context, teacherID string) ([]Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCourseByID(ctx context.Context, id string) error
	}

	TestRepository interface {
		CreateTest(ctx context.Context, tst Test) (Test, error)
		// QueryAllTests returns tests ordered by date (by identifier when the
		// backend embeds tests in their course records).
		QueryAllTests(ctx context.Context) ([]Test, error)
		GetTestByID(ctx context.Context, id string) (Test, error)
		QueryTestsByStudentID(ctx context.Context, studentID string) ([]Test, error)
		QueryTestsByCourseID(ctx context.Context, courseID string) ([]Test, error)
		UpdateTest(ctx context.Context, tst Test) (Test, error)
		DeleteTestByID(ctx context.Context, id string) error
	}
)

// AverageCache caches computed student averages. Implementations are
// best-effort: a failing cache must not fail the calling operation.
type AverageCache interface {
	GetAverage(ctx context.Context, studentID string) (avg float64, ok bool, err error)
	SetAverage(ctx context.Context, studentID string, avg float64) error
	DeleteAverage(ctx context.Context, studentID string) error
}
