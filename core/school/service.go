package school

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core"
)

var (
	errStudentRefMissing = errors.New("referenced student does not exist")
	errCourseRefMissing  = errors.New("referenced course does not exist")
	errTeacherRefMissing = errors.New("referenced teacher does not exist")
)

// Service implements the entity/reference integrity rules over the storage
// repositories: reference validation on create/update, dependent-record
// checks before delete, and the derived average metric.
type Service struct {
	students StudentRepository
	teachers TeacherRepository
	courses  CourseRepository
	tests    TestRepository
	avgCache AverageCache // optional; nil disables caching
	timeout  time.Duration
}

func NewService(conf *core.Config, students StudentRepository, teachers TeacherRepository,
	courses CourseRepository, tests TestRepository, avgCache AverageCache) *Service {

	timeout := conf.Database.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		students: students,
		teachers: teachers,
		courses:  courses,
		tests:    tests,
		avgCache: avgCache,
		timeout:  timeout,
	}
}

// storageCtx bounds every storage round-trip so a stuck engine surfaces as a
// deadline error instead of a hung request.
func (svc *Service) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, svc.timeout)
}

// Students

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	std := Student{
		FirstName:     ns.FirstName,
		LastName:      ns.LastName,
		Grade:         ns.Grade.Int(),
		StudentNumber: ns.StudentNumber,
		Homeroom:      ns.Homeroom,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.students.CreateStudent(ctx, std)
}

func (svc *Service) QueryAllStudents(ctx context.Context) ([]Student, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.students.QueryAllStudents(ctx)
}

func (svc *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.students.GetStudentByID(ctx, id)
}

func (svc *Service) UpdateStudent(ctx context.Context, orig Student, us UpdateStudent) (Student, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	std := Student{
		ID:            orig.ID,
		FirstName:     us.FirstName,
		LastName:      us.LastName,
		Grade:         us.Grade.Int(),
		StudentNumber: us.StudentNumber,
		Homeroom:      *us.Homeroom,
		CreatedAt:     orig.CreatedAt,
		UpdatedAt:     time.Now().UTC(),
	}
	return svc.students.UpdateStudent(ctx, std)
}

// DeleteStudent rejects the delete while any test still references the
// student; the student record is untouched on rejection.
func (svc *Service) DeleteStudent(ctx context.Context, id string) error {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if _, err := svc.students.GetStudentByID(ctx, id); err != nil {
		return err
	}
	tests, err := svc.tests.QueryTestsByStudentID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "checking student tests")
	}
	if len(tests) > 0 {
		return ErrStudentHasTests
	}
	if err = svc.students.DeleteStudentByID(ctx, id); err != nil {
		return err
	}
	svc.dropCachedAverage(ctx, id)
	return nil
}

// Teachers

func (svc *Service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	tch := Teacher{
		FirstName:      nt.FirstName,
		LastName:       nt.LastName,
		EmployeeNumber: nt.EmployeeNumber,
		Email:          nt.Email,
		Department:     nt.Department,
		Room:           nt.Room,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.teachers.CreateTeacher(ctx, tch)
}

func (svc *Service) QueryAllTeachers(ctx context.Context) ([]Teacher, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.teachers.QueryAllTeachers(ctx)
}

func (svc *Service) GetTeacher(ctx context.Context, id string) (Teacher, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.teachers.GetTeacherByID(ctx, id)
}

func (svc *Service) UpdateTeacher(ctx context.Context, orig Teacher, ut UpdateTeacher) (Teacher, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	tch := Teacher{
		ID:             orig.ID,
		FirstName:      ut.FirstName,
		LastName:       ut.LastName,
		EmployeeNumber: ut.EmployeeNumber,
		Email:          ut.Email,
		Department:     ut.Department,
		Room:           ut.Room,
		CreatedAt:      orig.CreatedAt,
		UpdatedAt:      time.Now().UTC(),
	}
	return svc.teachers.UpdateTeacher(ctx, tch)
}

// DeleteTeacher rejects the delete while any course still references the teacher.
func (svc *Service) DeleteTeacher(ctx context.Context, id string) error {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if _, err := svc.teachers.GetTeacherByID(ctx, id); err != nil {
		return err
	}
	courses, err := svc.courses.QueryCoursesByTeacherID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "checking teacher courses")
	}
	if len(courses) > 0 {
		return ErrTeacherHasCourses
	}
	return svc.teachers.DeleteTeacherByID(ctx, id)
}

// Courses

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if err := svc.checkTeacherRef(ctx, nc.TeacherID); err != nil {
		return Course{}, err
	}

	now := time.Now().UTC()
	crs := Course{
		Code:      nc.Code,
		Name:      nc.Name,
		TeacherID: nc.TeacherID,
		Semester:  nc.Semester.Int(),
		Room:      nc.Room,
		Schedule:  nc.Schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.courses.CreateCourse(ctx, crs)
}

func (svc *Service) QueryAllCourses(ctx context.Context) ([]Course, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.courses.QueryAllCourses(ctx)
}

func (svc *Service) GetCourse(ctx context.Context, id string) (Course, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.courses.GetCourseByID(ctx, id)
}

func (svc *Service) UpdateCourse(ctx context.Context, orig Course, uc UpdateCourse) (Course, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if *uc.TeacherID != orig.TeacherID {
		if err := svc.checkTeacherRef(ctx, *uc.TeacherID); err != nil {
			return Course{}, err
		}
	}

	crs := Course{
		ID:        orig.ID,
		Code:      uc.Code,
		Name:      uc.Name,
		TeacherID: *uc.TeacherID,
		Semester:  uc.Semester.Int(),
		Room:      uc.Room,
		Schedule:  uc.Schedule,
		CreatedAt: orig.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.courses.UpdateCourse(ctx, crs)
}

// DeleteCourse rejects the delete while the course has any associated test,
// embedded or referencing.
func (svc *Service) DeleteCourse(ctx context.Context, id string) error {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if _, err := svc.courses.GetCourseByID(ctx, id); err != nil {
		return err
	}
	tests, err := svc.tests.QueryTestsByCourseID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "checking course tests")
	}
	if len(tests) > 0 {
		return ErrCourseHasTests
	}
	return svc.courses.DeleteCourseByID(ctx, id)
}

// Tests

// CreateTest persists a new test only when both references resolve; nothing
// is written when either is absent.
func (svc *Service) CreateTest(ctx context.Context, nt NewTest) (Test, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if err := svc.checkTestRefs(ctx, nt.StudentID, nt.CourseID); err != nil {
		return Test{}, err
	}

	now := time.Now().UTC()
	tst := Test{
		StudentID: nt.StudentID,
		CourseID:  nt.CourseID,
		Name:      nt.Name,
		Date:      nt.Date,
		Mark:      nt.Mark.Float64(),
		OutOf:     nt.OutOf.Float64(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if nt.Weight != nil {
		tst.Weight = nt.Weight.Float64()
	}

	tst, err := svc.tests.CreateTest(ctx, tst)
	if err != nil {
		return Test{}, err
	}
	svc.dropCachedAverage(ctx, tst.StudentID)
	return tst, nil
}

func (svc *Service) QueryAllTests(ctx context.Context) ([]Test, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.tests.QueryAllTests(ctx)
}

func (svc *Service) GetTest(ctx context.Context, id string) (Test, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()
	return svc.tests.GetTestByID(ctx, id)
}

func (svc *Service) UpdateTest(ctx context.Context, orig Test, ut UpdateTest) (Test, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if ut.StudentID != orig.StudentID || ut.CourseID != orig.CourseID {
		if err := svc.checkTestRefs(ctx, ut.StudentID, ut.CourseID); err != nil {
			return Test{}, err
		}
	}

	tst := Test{
		ID:        orig.ID,
		StudentID: ut.StudentID,
		CourseID:  ut.CourseID,
		Name:      ut.Name,
		Date:      ut.Date,
		Mark:      ut.Mark.Float64(),
		OutOf:     ut.OutOf.Float64(),
		Weight:    ut.Weight.Float64(),
		CreatedAt: orig.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	tst, err := svc.tests.UpdateTest(ctx, tst)
	if err != nil {
		return Test{}, err
	}
	svc.dropCachedAverage(ctx, orig.StudentID)
	if tst.StudentID != orig.StudentID {
		svc.dropCachedAverage(ctx, tst.StudentID)
	}
	return tst, nil
}

func (svc *Service) DeleteTest(ctx context.Context, id string) error {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	tst, err := svc.tests.GetTestByID(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.tests.DeleteTestByID(ctx, id); err != nil {
		return err
	}
	svc.dropCachedAverage(ctx, tst.StudentID)
	return nil
}

func (svc *Service) TestsForStudent(ctx context.Context, studentID string) ([]Test, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if _, err := svc.students.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return svc.tests.QueryTestsByStudentID(ctx, studentID)
}

func (svc *Service) TestsForCourse(ctx context.Context, courseID string) ([]Test, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if _, err := svc.courses.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return svc.tests.QueryTestsByCourseID(ctx, courseID)
}

// StudentAverage computes the student's percentage average across all their
// tests, rounded to two decimals. A student with no tests averages 0.
func (svc *Service) StudentAverage(ctx context.Context, studentID string) (float64, error) {
	ctx, cancel := svc.storageCtx(ctx)
	defer cancel()

	if _, err := svc.students.GetStudentByID(ctx, studentID); err != nil {
		return 0, err
	}

	if svc.avgCache != nil {
		if avg, ok, err := svc.avgCache.GetAverage(ctx, studentID); err == nil && ok {
			return avg, nil
		}
	}

	tests, err := svc.tests.QueryTestsByStudentID(ctx, studentID)
	if err != nil {
		return 0, errors.Wrap(err, "querying student tests")
	}
	if len(tests) == 0 {
		return 0, nil
	}

	var sum float64
	for _, tst := range tests {
		sum += tst.Percentage()
	}
	avg := math.Round(sum/float64(len(tests))*100) / 100

	if svc.avgCache != nil {
		_ = svc.avgCache.SetAverage(ctx, studentID, avg) // best effort
	}
	return avg, nil
}

// helpers

func (svc *Service) checkTeacherRef(ctx context.Context, teacherID string) error {
	if teacherID == "" {
		return nil
	}
	if _, err := svc.teachers.GetTeacherByID(ctx, teacherID); err != nil {
		if errors.Cause(err) == ErrTeacherNotFound || errors.Cause(err) == ErrMalformedID {
			return core.NewValidationError(errTeacherRefMissing,
				core.FieldError{Field: "teacher_id", Error: errTeacherRefMissing.Error()})
		}
		return errors.Wrap(err, "checking teacher reference")
	}
	return nil
}

func (svc *Service) checkTestRefs(ctx context.Context, studentID, courseID string) error {
	if _, err := svc.students.GetStudentByID(ctx, studentID); err != nil {
		if errors.Cause(err) == ErrStudentNotFound || errors.Cause(err) == ErrMalformedID {
			return core.NewValidationError(errStudentRefMissing,
				core.FieldError{Field: "student_id", Error: errStudentRefMissing.Error()})
		}
		return errors.Wrap(err, "checking student reference")
	}
	if _, err := svc.courses.GetCourseByID(ctx, courseID); err != nil {
		if errors.Cause(err) == ErrCourseNotFound || errors.Cause(err) == ErrMalformedID {
			return core.NewValidationError(errCourseRefMissing,
				core.FieldError{Field: "course_id", Error: errCourseRefMissing.Error()})
		}
		return errors.Wrap(err, "checking course reference")
	}
	return nil
}

func (svc *Service) dropCachedAverage(ctx context.Context, studentID string) {
	if svc.avgCache == nil {
		return
	}
	_ = svc.avgCache.DeleteAverage(ctx, studentID) // best effort
}
