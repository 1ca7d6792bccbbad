package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Daisy2077/ICS4U/core"
)

type Teacher struct {
	ID             string    `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	EmployeeNumber string    `json:"employee_number,omitempty" db:"employee_number"`
	Email          string    `json:"email,omitempty" db:"email"`
	Department     string    `json:"department,omitempty" db:"department"`
	Room           string    `json:"room,omitempty" db:"room"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	EmployeeNumber string `json:"employee_number"`
	Email          string `json:"email" validate:"omitempty,email"`
	Department     string `json:"department"`
	Room           string `json:"room"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.EmployeeNumber = core.CleanString(nt.EmployeeNumber)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Department = core.CleanString(nt.Department)
	nt.Room = core.CleanString(nt.Room)
	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an
// existing Teacher.
type UpdateTeacher struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmployeeNumber string `json:"employee_number"`
	Email          string `json:"email" validate:"omitempty,email"`
	Department     string `json:"department"`
	Room           string `json:"room"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate, orig Teacher) error {
	if fname := core.CleanString(ut.FirstName); fname != "" {
		ut.FirstName = fname
	} else {
		ut.FirstName = orig.FirstName
	}

	if lname := core.CleanString(ut.LastName); lname != "" {
		ut.LastName = lname
	} else {
		ut.LastName = orig.LastName
	}

	if enum := core.CleanString(ut.EmployeeNumber); enum != "" {
		ut.EmployeeNumber = enum
	} else {
		ut.EmployeeNumber = orig.EmployeeNumber
	}

	if email := core.CleanString(ut.Email, true /* lower */); email != "" {
		ut.Email = email
	} else {
		ut.Email = orig.Email
	}

	if dept := core.CleanString(ut.Department); dept != "" {
		ut.Department = dept
	} else {
		ut.Department = orig.Department
	}

	if room := core.CleanString(ut.Room); room != "" {
		ut.Room = room
	} else {
		ut.Room = orig.Room
	}

	return validate.Struct(ut)
}
