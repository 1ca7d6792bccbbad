package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Daisy2077/ICS4U/core"
)

// Test is a graded assessment a Student wrote in a Course. Date is an opaque
// string (the source system never validated it as a calendar date); listings
// sort it lexicographically, which is chronological for ISO-style dates.
type Test struct {
	ID        string    `json:"id" db:"id"`
	StudentID string    `json:"student_id" db:"student_id"`
	CourseID  string    `json:"course_id" db:"course_id"`
	Name      string    `json:"name" db:"name"`
	Date      string    `json:"date" db:"date"`
	Mark      float64   `json:"mark" db:"mark"`
	OutOf     float64   `json:"out_of" db:"out_of"`
	Weight    float64   `json:"weight,omitempty" db:"weight"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// Percentage returns the test score scaled to 100.
func (t Test) Percentage() float64 {
	return t.Mark / t.OutOf * 100
}

// NewTest contains information needed to record a new Test.
type NewTest struct {
	StudentID string  `json:"student_id" validate:"required"`
	CourseID  string  `json:"course_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Date      string  `json:"date" validate:"required"`
	Mark      Number  `json:"mark" validate:"gte=0"`
	OutOf     Number  `json:"out_of" validate:"required,gt=0"`
	Weight    *Number `json:"weight" validate:"omitempty,gte=0"`
}

func (nt *NewTest) Validate(validate *validator.Validate) error {
	nt.StudentID = core.CleanString(nt.StudentID)
	nt.CourseID = core.CleanString(nt.CourseID)
	nt.Name = core.CleanString(nt.Name)
	nt.Date = core.CleanString(nt.Date)
	return validate.Struct(nt)
}

// UpdateTest defines what information may be provided to modify an existing
// Test. Changed student/course references are re-validated by the service.
type UpdateTest struct {
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Mark      *Number `json:"mark" validate:"omitempty,gte=0"`
	OutOf     *Number `json:"out_of" validate:"omitempty,gt=0"`
	Weight    *Number `json:"weight" validate:"omitempty,gte=0"`
}

func (ut *UpdateTest) Validate(validate *validator.Validate, orig Test) error {
	if sid := core.CleanString(ut.StudentID); sid != "" {
		ut.StudentID = sid
	} else {
		ut.StudentID = orig.StudentID
	}

	if cid := core.CleanString(ut.CourseID); cid != "" {
		ut.CourseID = cid
	} else {
		ut.CourseID = orig.CourseID
	}

	if name := core.CleanString(ut.Name); name != "" {
		ut.Name = name
	} else {
		ut.Name = orig.Name
	}

	if date := core.CleanString(ut.Date); date != "" {
		ut.Date = date
	} else {
		ut.Date = orig.Date
	}

	if ut.Mark == nil {
		mark := Number(orig.Mark)
		ut.Mark = &mark
	}
	if ut.OutOf == nil {
		outOf := Number(orig.OutOf)
		ut.OutOf = &outOf
	}
	if ut.Weight == nil {
		weight := Number(orig.Weight)
		ut.Weight = &weight
	}

	return validate.Struct(ut)
}
