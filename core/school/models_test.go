package school

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Daisy2077/ICS4U/core"
)

func newTestValidate(t *testing.T) *validator.Validate {
	t.Helper()

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, ok := uni.GetTranslator("en")
	if !ok {
		t.Fatal("en translator not found")
	}
	core.InitValidators(validate, translator)
	return validate
}

func TestNewStudent_Validate(t *testing.T) {
	validate := newTestValidate(t)

	tests := []struct {
		name    string
		ns      NewStudent
		wantErr bool
	}{
		{name: "valid", ns: NewStudent{FirstName: "Ada", LastName: "Ilunga", Grade: 12, StudentNumber: "337913"}},
		{name: "missing first name", ns: NewStudent{LastName: "Ilunga", Grade: 12, StudentNumber: "337913"}, wantErr: true},
		{name: "missing student number", ns: NewStudent{FirstName: "Ada", LastName: "Ilunga", Grade: 12}, wantErr: true},
		{name: "grade too low", ns: NewStudent{FirstName: "Ada", LastName: "Ilunga", Grade: 0, StudentNumber: "337913"}, wantErr: true},
		{name: "grade too high", ns: NewStudent{FirstName: "Ada", LastName: "Ilunga", Grade: 13, StudentNumber: "337913"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.ns.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewStudent_Validate_cleansInput(t *testing.T) {
	validate := newTestValidate(t)

	ns := NewStudent{FirstName: "  Ada ", LastName: " Ilunga  ", Grade: 12, StudentNumber: " 337913 "}
	if err := ns.Validate(validate); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if ns.FirstName != "Ada" || ns.LastName != "Ilunga" || ns.StudentNumber != "337913" {
		t.Errorf("Validate() did not trim input: %+v", ns)
	}
}

func TestUpdateStudent_Validate_mergesOriginal(t *testing.T) {
	validate := newTestValidate(t)

	orig := Student{
		ID:            "42",
		FirstName:     "Ada",
		LastName:      "Ilunga",
		Grade:         11,
		StudentNumber: "337913",
		Homeroom:      "204",
	}

	// only the grade is supplied; everything else keeps its stored value
	grade := Number(12)
	us := UpdateStudent{Grade: &grade}
	if err := us.Validate(validate, orig); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if us.FirstName != "Ada" || us.LastName != "Ilunga" || us.StudentNumber != "337913" {
		t.Errorf("Validate() dropped unchanged fields: %+v", us)
	}
	if us.Grade.Int() != 12 {
		t.Errorf("Grade = %v, want 12", us.Grade.Int())
	}
	if us.Homeroom == nil || *us.Homeroom != "204" {
		t.Errorf("Homeroom = %v, want 204", us.Homeroom)
	}

	// an explicit empty homeroom clears it
	empty := ""
	us = UpdateStudent{Homeroom: &empty}
	if err := us.Validate(validate, orig); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if us.Homeroom == nil || *us.Homeroom != "" {
		t.Errorf("Homeroom = %v, want empty", us.Homeroom)
	}

	// an out-of-range grade is still rejected
	grade = Number(13)
	us = UpdateStudent{Grade: &grade}
	if err := us.Validate(validate, orig); err == nil {
		t.Error("Validate() accepted grade 13")
	}
}

func TestNewCourse_Validate(t *testing.T) {
	validate := newTestValidate(t)

	tests := []struct {
		name    string
		nc      NewCourse
		wantErr bool
	}{
		{name: "valid", nc: NewCourse{Code: "ICS4U", Name: "Computer Science", Semester: 1}},
		{name: "valid with dash", nc: NewCourse{Code: "ICS4U-01", Name: "Computer Science", Semester: 2}},
		{name: "code starts with digit", nc: NewCourse{Code: "4UICS", Name: "Computer Science", Semester: 1}, wantErr: true},
		{name: "code with space", nc: NewCourse{Code: "ICS 4U", Name: "Computer Science", Semester: 1}, wantErr: true},
		{name: "missing name", nc: NewCourse{Code: "ICS4U", Semester: 1}, wantErr: true},
		{name: "semester out of range", nc: NewCourse{Code: "ICS4U", Name: "Computer Science", Semester: 3}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.nc.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateCourse_Validate_teacherDetach(t *testing.T) {
	validate := newTestValidate(t)

	orig := Course{ID: "7", Code: "ICS4U", Name: "Computer Science", TeacherID: "3", Semester: 1}

	// absent teacher_id keeps the current teacher
	uc := UpdateCourse{Name: "Computer Science, Grade 12"}
	if err := uc.Validate(validate, orig); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if uc.TeacherID == nil || *uc.TeacherID != "3" {
		t.Errorf("TeacherID = %v, want 3", uc.TeacherID)
	}

	// an explicit empty teacher_id detaches the teacher
	empty := ""
	uc = UpdateCourse{TeacherID: &empty}
	if err := uc.Validate(validate, orig); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if uc.TeacherID == nil || *uc.TeacherID != "" {
		t.Errorf("TeacherID = %v, want empty", uc.TeacherID)
	}
}

func TestNewTest_Validate(t *testing.T) {
	validate := newTestValidate(t)

	valid := NewTest{StudentID: "1", CourseID: "2", Name: "Unit 1 Test", Date: "2026-02-10", Mark: 27, OutOf: 30}

	tests := []struct {
		name    string
		mutate  func(nt *NewTest)
		wantErr bool
	}{
		{name: "valid", mutate: func(nt *NewTest) {}},
		{name: "zero mark is fine", mutate: func(nt *NewTest) { nt.Mark = 0 }},
		{name: "negative mark", mutate: func(nt *NewTest) { nt.Mark = -1 }, wantErr: true},
		{name: "zero out_of", mutate: func(nt *NewTest) { nt.OutOf = 0 }, wantErr: true},
		{name: "missing student", mutate: func(nt *NewTest) { nt.StudentID = "" }, wantErr: true},
		{name: "missing course", mutate: func(nt *NewTest) { nt.CourseID = "" }, wantErr: true},
		{name: "missing date", mutate: func(nt *NewTest) { nt.Date = "" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt := valid
			tt.mutate(&nt)
			if err := nt.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateTest_Validate_mergesOriginal(t *testing.T) {
	validate := newTestValidate(t)

	orig := Test{
		ID:        "9",
		StudentID: "1",
		CourseID:  "2",
		Name:      "Unit 1 Test",
		Date:      "2026-02-10",
		Mark:      27,
		OutOf:     30,
	}

	mark := Number(29)
	upd := UpdateTest{Mark: &mark}
	if err := upd.Validate(validate, orig); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if upd.StudentID != "1" || upd.CourseID != "2" || upd.Name != "Unit 1 Test" || upd.Date != "2026-02-10" {
		t.Errorf("Validate() dropped unchanged fields: %+v", upd)
	}
	if upd.Mark.Float64() != 29 || upd.OutOf.Float64() != 30 {
		t.Errorf("marks = %v/%v, want 29/30", upd.Mark.Float64(), upd.OutOf.Float64())
	}
}

func TestTest_Percentage(t *testing.T) {
	tst := Test{Mark: 27, OutOf: 30}
	if got := tst.Percentage(); got != 90 {
		t.Errorf("Percentage() = %v, want 90", got)
	}
}
