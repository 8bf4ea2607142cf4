package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address            string
		Host               string
		JWTExpirationDelta time.Duration
	}

	AdminConfig struct {
		PasswordHash string // bcrypt; empty disables the admin API
	}

	CatalogConfig struct {
		DataDir string // empty: embedded seed data
		Watch   bool
	}

	ChatConfig struct {
		ReplyDelay time.Duration
	}

	DatabaseConfig struct {
		Engine     string // memory | postgres
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	EmailConfig struct {
		DefaultFromEmail  string
		ContactRecipients []string
		SendgridApiKey    string
	}

	SnapshotConfig struct {
		Dir      string
		S3Bucket string
		S3Region string
		S3Prefix string
		// static credentials; the default AWS chain is used when empty
		S3AccessKey string
		S3SecretKey string
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string
		Build        string
		RollbarToken string
		WorkDir      string

		Server   ServerConfig
		Admin    AdminConfig
		Catalog  CatalogConfig
		Chat     ChatConfig
		Database DatabaseConfig
		Email    EmailConfig
		Snapshot SnapshotConfig
	}
)

const (
	EngineMemory   = "memory"
	EnginePostgres = "postgres"
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c DatabaseConfig) UsesPostgres() bool {
	return c.Engine == EnginePostgres
}

// NewConfig reads the configuration from defaults, `config/.env.<env>` and the environment.
// Env vars are prefixed by the upper-cased ENV value, e.g. DEV_SERVER_ADDRESS.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "PUNotes")
	conf.SetDefault("secretKey", "s8$kq-2v!m0d^t4c&x=j7wz)p9n1b(e#hl_5yr@u6g*3fa")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.jwtExpirationDelta", 12*time.Hour)
	conf.SetDefault("admin.passwordHash", "")
	conf.SetDefault("catalog.dataDir", "")
	conf.SetDefault("catalog.watch", false)
	conf.SetDefault("chat.replyDelay", 500*time.Millisecond)
	conf.SetDefault("database.engine", EngineMemory)
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "punotes")
	conf.SetDefault("database.user", "punotes")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.disableTLS", true)
	conf.SetDefault("email.defaultFromEmail", "PUNotes <noreply@localhost>")
	conf.SetDefault("email.contactRecipients", []string{"info@sarozpokhrel.com.np", "rahulkanwaredu@gmail.com"})
	conf.SetDefault("email.sendgridApiKey", "")
	conf.SetDefault("snapshot.dir", "")
	conf.SetDefault("snapshot.s3Bucket", "")
	conf.SetDefault("snapshot.s3Region", "ap-south-1")
	conf.SetDefault("snapshot.s3Prefix", "snapshots/")
	conf.SetDefault("snapshot.s3AccessKey", "")
	conf.SetDefault("snapshot.s3SecretKey", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		WorkDir:      wd,
		Server: ServerConfig{
			Address:            conf.GetString("server.address"),
			Host:               conf.GetString("server.host"),
			JWTExpirationDelta: conf.GetDuration("server.jwtExpirationDelta"),
		},
		Admin: AdminConfig{
			PasswordHash: conf.GetString("admin.passwordHash"),
		},
		Catalog: CatalogConfig{
			DataDir: conf.GetString("catalog.dataDir"),
			Watch:   conf.GetBool("catalog.watch"),
		},
		Chat: ChatConfig{
			ReplyDelay: conf.GetDuration("chat.replyDelay"),
		},
		Database: DatabaseConfig{
			Engine:     strings.ToLower(conf.GetString("database.engine")),
			Host:       conf.GetString("database.host"),
			Port:       conf.GetString("database.port"),
			Name:       conf.GetString("database.name"),
			User:       conf.GetString("database.user"),
			Password:   conf.GetString("database.password"),
			DisableTLS: conf.GetBool("database.disableTLS"),
		},
		Email: EmailConfig{
			DefaultFromEmail:  conf.GetString("email.defaultFromEmail"),
			ContactRecipients: conf.GetStringSlice("email.contactRecipients"),
			SendgridApiKey:    conf.GetString("email.sendgridApiKey"),
		},
		Snapshot: SnapshotConfig{
			Dir:      conf.GetString("snapshot.dir"),
			S3Bucket: conf.GetString("snapshot.s3Bucket"),
			S3Region: conf.GetString("snapshot.s3Region"),
			S3Prefix: conf.GetString("snapshot.s3Prefix"),

			S3AccessKey: conf.GetString("snapshot.s3AccessKey"),
			S3SecretKey: conf.GetString("snapshot.s3SecretKey"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: no delays, no external services.
func NewTestConfig() *Config {
	return &Config{
		Env:       "TEST",
		Debug:     false,
		TestMode:  true,
		AppName:   "PUNotes",
		SecretKey: "secret",
		Build:     "test",
		Server: ServerConfig{
			Address:            ":0",
			Host:               "localhost",
			JWTExpirationDelta: 10 * time.Minute,
		},
		Database: DatabaseConfig{Engine: EngineMemory},
		Email: EmailConfig{
			DefaultFromEmail:  "PUNotes <noreply@localhost>",
			ContactRecipients: []string{"team@punotes.test"},
		},
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("%s(env=%s, debug=%t, db=%s)", c.AppName, c.Env, c.Debug, c.Database.Engine)
}
