package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Daisy2077/ICS4U/core"
)

type Student struct {
	ID            string    `json:"id" db:"id"`
	FirstName     string    `json:"first_name" db:"first_name"`
	LastName      string    `json:"last_name" db:"last_name"`
	Grade         int       `json:"grade" db:"grade"`
	StudentNumber string    `json:"student_number" db:"student_number"`
	Homeroom      string    `json:"homeroom,omitempty" db:"homeroom"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Grade         Number `json:"grade" validate:"required,gte=1,lte=12"`
	StudentNumber string `json:"student_number" validate:"required"`
	Homeroom      string `json:"homeroom"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.StudentNumber = core.CleanString(ns.StudentNumber)
	ns.Homeroom = core.CleanString(ns.Homeroom)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Only supplied fields are applied; the rest keep their stored value.
type UpdateStudent struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Grade         *Number `json:"grade" validate:"omitempty,gte=1,lte=12"`
	StudentNumber string  `json:"student_number"`
	Homeroom      *string `json:"homeroom"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate, orig Student) error {
	if fname := core.CleanString(us.FirstName); fname != "" {
		us.FirstName = fname
	} else {
		us.FirstName = orig.FirstName
	}

	if lname := core.CleanString(us.LastName); lname != "" {
		us.LastName = lname
	} else {
		us.LastName = orig.LastName
	}

	if snum := core.CleanString(us.StudentNumber); snum != "" {
		us.StudentNumber = snum
	} else {
		us.StudentNumber = orig.StudentNumber
	}

	if us.Grade == nil {
		grade := Number(orig.Grade)
		us.Grade = &grade
	}
	if us.Homeroom == nil {
		us.Homeroom = &orig.Homeroom
	} else {
		hr := core.CleanString(*us.Homeroom)
		us.Homeroom = &hr
	}

	return validate.Struct(us)
}
