package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

// build is overridden via -ldflags at compile time.
var build = "dev"

type Config struct {
	Debug    bool
	TestMode bool
	Env      string
	Build    string
	AppName  string

	RollbarToken string

	Server struct {
		Host            string
		Addr            string
		DebugAddr       string
		ShutdownTimeout time.Duration
	}

	Database struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
		// Timeout bounds every storage round-trip issued by the school service.
		Timeout time.Duration
	}

	Redis struct {
		Addr       string
		Password   string
		DB         int
		AverageTTL time.Duration
	}

	School struct {
		Storage    string // "postgres" | "memory"
		IDPolicy   string // "uuid" | "sequential"
		EmbedTests bool   // store tests inside their owning course record (memory storage only)
	}
}

func (conf *Config) check() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.AppName, "appName"),
		vala.StringNotEmpty(conf.Server.Addr, "serverAddr"),
		vala.StringNotEmpty(conf.School.Storage, "schoolStorage"),
		vala.StringNotEmpty(conf.School.IDPolicy, "schoolIDPolicy"),
	).Check()
}

// DatabaseAddress returns the database "host:port" address.
func (conf *Config) DatabaseAddress() string {
	return conf.Database.Host + ":" + conf.Database.Port
}

// NewConfig loads the app configuration from defaults, an optional
// config/.env.<env> file and environment variables prefixed with the env name.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "SchoolAPI")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "school")
	v.SetDefault("databaseUser", "school")
	v.SetDefault("databasePassword", "school")
	v.SetDefault("databaseAdminUser", "")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseDisableTLS", true)
	v.SetDefault("databaseTimeout", 5*time.Second)
	v.SetDefault("redisAddr", "")
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDB", 0)
	v.SetDefault("redisAverageTTL", 10*time.Minute)
	v.SetDefault("schoolStorage", "memory")
	v.SetDefault("schoolIDPolicy", "uuid")
	v.SetDefault("schoolEmbedTests", false)
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     testMode,
		Env:          env,
		Build:        build,
		AppName:      v.GetString("appName"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.DebugAddr = v.GetString("serverDebugAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Database.Engine = v.GetString("databaseEngine")
	conf.Database.Name = v.GetString("databaseName")
	conf.Database.User = v.GetString("databaseUser")
	conf.Database.Password = v.GetString("databasePassword")
	conf.Database.AdminUser = v.GetString("databaseAdminUser")
	conf.Database.AdminPassword = v.GetString("databaseAdminPassword")
	conf.Database.Host = v.GetString("databaseHost")
	conf.Database.Port = v.GetString("databasePort")
	conf.Database.DisableTLS = v.GetBool("databaseDisableTLS")
	conf.Database.Timeout = v.GetDuration("databaseTimeout")
	conf.Redis.Addr = v.GetString("redisAddr")
	conf.Redis.Password = v.GetString("redisPassword")
	conf.Redis.DB = v.GetInt("redisDB")
	conf.Redis.AverageTTL = v.GetDuration("redisAverageTTL")
	conf.School.Storage = v.GetString("schoolStorage")
	conf.School.IDPolicy = v.GetString("schoolIDPolicy")
	conf.School.EmbedTests = v.GetBool("schoolEmbedTests")

	if err := conf.check(); err != nil {
		log.Fatalf("config.check: %v", err)
	}
	return conf
}
