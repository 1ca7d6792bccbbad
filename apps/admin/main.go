package main

import (
	"log"
	"os"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
	"github.com/Daisy2077/ICS4U/storage/database"
	inmemdb "github.com/Daisy2077/ICS4U/storage/database/inmem"
	sqlxrepos "github.com/Daisy2077/ICS4U/storage/database/sqlx"
)

var logger *log.Logger // todo: logger service

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	cli := commandLine{conf: conf, out: os.Stdout}

	switch conf.School.Storage {
	case "postgres":
		db, err := database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()
		errAndDie(db.Ping())

		cli.db = db.DB
		cli.svc = school.NewService(
			conf,
			sqlxrepos.NewStudentRepository(db),
			sqlxrepos.NewTeacherRepository(db),
			sqlxrepos.NewCourseRepository(db),
			sqlxrepos.NewTestRepository(db),
			nil,
		)
	case "memory":
		policy, err := school.ParseIDPolicy(conf.School.IDPolicy)
		errAndDie(err)
		db, err := inmemdb.Open(inmemdb.Options{IDPolicy: policy, EmbedTests: conf.School.EmbedTests})
		errAndDie(err)

		cli.svc = school.NewService(
			conf,
			inmemdb.NewStudentRepository(db),
			inmemdb.NewTeacherRepository(db),
			inmemdb.NewCourseRepository(db),
			inmemdb.NewTestRepository(db),
			nil,
		)
	default:
		logger.Fatalf("unknown storage %q", conf.School.Storage)
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
