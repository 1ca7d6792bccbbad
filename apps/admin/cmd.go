package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf *core.Config
	db   *sql.DB // nil on the in-memory storage
	svc  *school.Service
	out  io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a database migration command (up, down, status, ...)")
	fmt.Println("  seed - load a demo data set")
	fmt.Println("  students - list all students")
	fmt.Println("  teachers - list all teachers")
	fmt.Println("  courses - list all courses")
	fmt.Println("  average -student ID - report a student's percentage average")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	averageCmd := flag.NewFlagSet("average", flag.ExitOnError)
	averageStudent := averageCmd.String("student", "", "The student's identifier.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		if cli.db == nil {
			return errors.New("migrate requires the postgres storage")
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "students":
		return cli.listStudents()
	case "teachers":
		return cli.listTeachers()
	case "courses":
		return cli.listCourses()
	case "average":
		if err := averageCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *averageStudent == "" {
			averageCmd.Usage()
			return errHelp
		}
		return cli.average(*averageStudent)
	default:
		cli.printUsage()
		return errHelp
	}
}
