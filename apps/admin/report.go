package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

func (cli *commandLine) listStudents() error {
	students, err := cli.svc.QueryAllStudents(context.Background())
	if err != nil {
		return err
	}

	color.Yellow("\nStudents (%d)", len(students))
	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"ID", "Last Name", "First Name", "Grade", "Student Number", "Homeroom"})
	for _, std := range students {
		table.Append([]string{
			std.ID,
			std.LastName,
			std.FirstName,
			strconv.Itoa(std.Grade),
			std.StudentNumber,
			std.Homeroom,
		})
	}
	table.Render()
	return nil
}

func (cli *commandLine) listTeachers() error {
	teachers, err := cli.svc.QueryAllTeachers(context.Background())
	if err != nil {
		return err
	}

	color.Yellow("\nTeachers (%d)", len(teachers))
	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"ID", "Last Name", "First Name", "Department", "Email", "Room"})
	for _, tch := range teachers {
		table.Append([]string{
			tch.ID,
			tch.LastName,
			tch.FirstName,
			tch.Department,
			tch.Email,
			tch.Room,
		})
	}
	table.Render()
	return nil
}

func (cli *commandLine) listCourses() error {
	courses, err := cli.svc.QueryAllCourses(context.Background())
	if err != nil {
		return err
	}

	color.Yellow("\nCourses (%d)", len(courses))
	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"ID", "Code", "Name", "Teacher ID", "Semester", "Room"})
	for _, crs := range courses {
		table.Append([]string{
			crs.ID,
			crs.Code,
			crs.Name,
			crs.TeacherID,
			strconv.Itoa(crs.Semester),
			crs.Room,
		})
	}
	table.Render()
	return nil
}

func (cli *commandLine) average(studentID string) error {
	ctx := context.Background()

	std, err := cli.svc.GetStudent(ctx, studentID)
	if err != nil {
		return err
	}
	avg, err := cli.svc.StudentAverage(ctx, studentID)
	if err != nil {
		return err
	}

	color.Green("%s %s: %s%%", std.FirstName, std.LastName, fmt.Sprintf("%.2f", avg))
	return nil
}
