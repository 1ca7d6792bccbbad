package school

import "github.com/pkg/errors"

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrTestNotFound    = errors.New("test not found")

	// ErrMalformedID is returned when an identifier string is not a valid
	// reference token for the configured identifier policy.
	ErrMalformedID = errors.New("malformed identifier")

	// delete blockers: the record is still referenced by a dependent record.
	ErrStudentHasTests   = errors.New("student still has tests recorded")
	ErrCourseHasTests    = errors.New("course still has tests recorded")
	ErrTeacherHasCourses = errors.New("teacher is still assigned to courses")
)

// IsNotFound reports whether err is a missing-record error for any entity.
func IsNotFound(err error) bool {
	switch errors.Cause(err) {
	case ErrStudentNotFound, ErrTeacherNotFound, ErrCourseNotFound, ErrTestNotFound:
		return true
	}
	return false
}

// IsProtected reports whether err is a delete rejected on referential integrity.
func IsProtected(err error) bool {
	switch errors.Cause(err) {
	case ErrStudentHasTests, ErrCourseHasTests, ErrTeacherHasCourses:
		return true
	}
	return false
}
