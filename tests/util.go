package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
)

// NewValidate returns a fully configured validator and its translator.
func NewValidate(t *testing.T) (*validator.Validate, ut.Translator) {
	t.Helper()

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, ok := uni.GetTranslator("en")
	if !ok {
		t.Fatal("NewValidate() failed: en translator not found")
	}
	core.InitValidators(validate, translator)
	return validate, translator
}

func CreateStudent(
	t *testing.T,
	repo school.StudentRepository,
	fname, lname string,
	grade int,
	studentNumber string,
) school.Student {
	t.Helper()

	now := time.Now().UTC()
	std, err := repo.CreateStudent(context.Background(), school.Student{
		FirstName:     fname,
		LastName:      lname,
		Grade:         grade,
		StudentNumber: studentNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateTeacher(
	t *testing.T,
	repo school.TeacherRepository,
	fname, lname, department string,
) school.Teacher {
	t.Helper()

	now := time.Now().UTC()
	tch, err := repo.CreateTeacher(context.Background(), school.Teacher{
		FirstName:  fname,
		LastName:   lname,
		Department: department,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

func CreateCourse(
	t *testing.T,
	repo school.CourseRepository,
	code, name, teacherID string,
	semester int,
) school.Course {
	t.Helper()

	now := time.Now().UTC()
	crs, err := repo.CreateCourse(context.Background(), school.Course{
		Code:      code,
		Name:      name,
		TeacherID: teacherID,
		Semester:  semester,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateTest(
	t *testing.T,
	repo school.TestRepository,
	studentID, courseID, name, date string,
	mark, outOf float64,
) school.Test {
	t.Helper()

	now := time.Now().UTC()
	tst, err := repo.CreateTest(context.Background(), school.Test{
		StudentID: studentID,
		CourseID:  courseID,
		Name:      name,
		Date:      date,
		Mark:      mark,
		OutOf:     outOf,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateTest() failed: %v", err)
	}
	return tst
}
