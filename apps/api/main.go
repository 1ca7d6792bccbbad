package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/Daisy2077/ICS4U/apps/api/echo"
	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
	logsvc "github.com/Daisy2077/ICS4U/services/logger"
	rediscache "github.com/Daisy2077/ICS4U/storage/cache/redis"
	"github.com/Daisy2077/ICS4U/storage/database"
	inmemdb "github.com/Daisy2077/ICS4U/storage/database/inmem"
	sqlxrepos "github.com/Daisy2077/ICS4U/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := newLogger(conf, "API : ")
	dbLogger := newLogger(conf, "DB : ")

	// set up repositories
	var (
		studentRepo school.StudentRepository
		teacherRepo school.TeacherRepository
		courseRepo  school.CourseRepository
		testRepo    school.TestRepository
	)
	switch conf.School.Storage {
	case "postgres":
		db, err := setUpDB(conf)
		if err != nil {
			dbLogger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				dbLogger.Error("failed to close DB", err)
			}
		}()
		studentRepo = sqlxrepos.NewStudentRepository(db)
		teacherRepo = sqlxrepos.NewTeacherRepository(db)
		courseRepo = sqlxrepos.NewCourseRepository(db)
		testRepo = sqlxrepos.NewTestRepository(db)
	case "memory":
		policy, err := school.ParseIDPolicy(conf.School.IDPolicy)
		if err != nil {
			logger.Fatal(fmt.Sprintf("parsing identifier policy: %v", err), err)
		}
		db, err := inmemdb.Open(inmemdb.Options{IDPolicy: policy, EmbedTests: conf.School.EmbedTests})
		if err != nil {
			dbLogger.Fatal(fmt.Sprintf("opening in-memory storage: %v", err), err)
		}
		studentRepo = inmemdb.NewStudentRepository(db)
		teacherRepo = inmemdb.NewTeacherRepository(db)
		courseRepo = inmemdb.NewCourseRepository(db)
		testRepo = inmemdb.NewTestRepository(db)
	default:
		logger.Fatal(fmt.Sprintf("unknown storage %q", conf.School.Storage))
	}

	// optional average cache
	var avgCache school.AverageCache
	if conf.Redis.Addr != "" {
		cache := rediscache.NewAverageCache(conf)
		if err := cache.Ping(context.Background()); err != nil {
			logger.Fatal(fmt.Sprintf("pinging redis: %v", err), err)
		}
		defer func() { _ = cache.Close() }()
		avgCache = cache
	}

	schoolSvc := school.NewService(conf, studentRepo, teacherRepo, courseRepo, testRepo, avgCache)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddr, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			SchoolSvc:  schoolSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newLogger(conf *core.Config, prefix string) core.Logger {
	std := log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.RollbarToken == "" {
		return core.NewStdLogger(std)
	}
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
