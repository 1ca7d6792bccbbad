package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Daisy2077/ICS4U/core"
)

type Course struct {
	ID        string    `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	TeacherID string    `json:"teacher_id,omitempty" db:"teacher_id"`
	Semester  int       `json:"semester" db:"semester"`
	Room      string    `json:"room,omitempty" db:"room"`
	Schedule  string    `json:"schedule,omitempty" db:"schedule"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code      string `json:"code" validate:"required,coursecode"`
	Name      string `json:"name" validate:"required"`
	TeacherID string `json:"teacher_id"`
	Semester  Number `json:"semester" validate:"required,gte=1,lte=2"`
	Room      string `json:"room"`
	Schedule  string `json:"schedule"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	nc.TeacherID = core.CleanString(nc.TeacherID)
	nc.Room = core.CleanString(nc.Room)
	nc.Schedule = core.CleanString(nc.Schedule)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing
// Course. An explicit empty teacher_id detaches the teacher.
type UpdateCourse struct {
	Code      string  `json:"code" validate:"omitempty,coursecode"`
	Name      string  `json:"name"`
	TeacherID *string `json:"teacher_id"`
	Semester  *Number `json:"semester" validate:"omitempty,gte=1,lte=2"`
	Room      string  `json:"room"`
	Schedule  string  `json:"schedule"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate, orig Course) error {
	if code := core.CleanString(uc.Code); code != "" {
		uc.Code = code
	} else {
		uc.Code = orig.Code
	}

	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}

	if uc.TeacherID == nil {
		uc.TeacherID = &orig.TeacherID
	} else {
		tid := core.CleanString(*uc.TeacherID)
		uc.TeacherID = &tid
	}

	if uc.Semester == nil {
		sem := Number(orig.Semester)
		uc.Semester = &sem
	}

	if room := core.CleanString(uc.Room); room != "" {
		uc.Room = room
	} else {
		uc.Room = orig.Room
	}

	if sched := core.CleanString(uc.Schedule); sched != "" {
		uc.Schedule = sched
	} else {
		uc.Schedule = orig.Schedule
	}

	return validate.Struct(uc)
}
