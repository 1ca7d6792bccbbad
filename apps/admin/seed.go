package main

import (
	"context"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core/school"
)

// seed loads a small demo data set: two teachers, two students, two courses
// and a handful of tests. Handy for poking at a fresh environment.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	mukeba, err := cli.svc.CreateTeacher(ctx, school.NewTeacher{
		FirstName:  "Papy",
		LastName:   "Mukeba",
		Email:      "p.mukeba@school.test",
		Department: "Computer Science",
	})
	if err != nil {
		return errors.Wrap(err, "seeding teachers")
	}
	kabongo, err := cli.svc.CreateTeacher(ctx, school.NewTeacher{
		FirstName:  "Grace",
		LastName:   "Kabongo",
		Email:      "g.kabongo@school.test",
		Department: "Mathematics",
	})
	if err != nil {
		return errors.Wrap(err, "seeding teachers")
	}

	ada, err := cli.svc.CreateStudent(ctx, school.NewStudent{
		FirstName:     "Ada",
		LastName:      "Ilunga",
		Grade:         12,
		StudentNumber: "337913",
		Homeroom:      "204",
	})
	if err != nil {
		return errors.Wrap(err, "seeding students")
	}
	sam, err := cli.svc.CreateStudent(ctx, school.NewStudent{
		FirstName:     "Sam",
		LastName:      "Tshilobo",
		Grade:         11,
		StudentNumber: "340021",
		Homeroom:      "118",
	})
	if err != nil {
		return errors.Wrap(err, "seeding students")
	}

	ics, err := cli.svc.CreateCourse(ctx, school.NewCourse{
		Code:      "ICS4U",
		Name:      "Computer Science, Grade 12",
		TeacherID: mukeba.ID,
		Semester:  1,
		Room:      "Lab 2",
		Schedule:  "Mon/Wed/Fri 10:15",
	})
	if err != nil {
		return errors.Wrap(err, "seeding courses")
	}
	mcv, err := cli.svc.CreateCourse(ctx, school.NewCourse{
		Code:      "MCV4U",
		Name:      "Calculus and Vectors, Grade 12",
		TeacherID: kabongo.ID,
		Semester:  2,
		Room:      "211",
		Schedule:  "Tue/Thu 13:30",
	})
	if err != nil {
		return errors.Wrap(err, "seeding courses")
	}

	newTests := []school.NewTest{
		{StudentID: ada.ID, CourseID: ics.ID, Name: "Unit 1 Test", Date: "2026-02-10", Mark: 27, OutOf: 30},
		{StudentID: ada.ID, CourseID: ics.ID, Name: "Culminating Project", Date: "2026-06-01", Mark: 45, OutOf: 50},
		{StudentID: ada.ID, CourseID: mcv.ID, Name: "Derivatives Quiz", Date: "2026-03-05", Mark: 18, OutOf: 20},
		{StudentID: sam.ID, CourseID: ics.ID, Name: "Unit 1 Test", Date: "2026-02-10", Mark: 21, OutOf: 30},
	}
	for _, nt := range newTests {
		if _, err = cli.svc.CreateTest(ctx, nt); err != nil {
			return errors.Wrap(err, "seeding tests")
		}
	}

	color.Green("Seeded 2 teachers, 2 students, 2 courses, %d tests.", len(newTests))
	return nil
}
