package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBHost  string `json:"dbhost"`
	DBPort  uint16 `json:"dbport"`
	DBName  string `json:"dbname"`
	DBUser  string `json:"dbuser"`
	DBPass  string `json:"dbpass"`

	// Mail relay credentials consumed by the notification package.
	MailHost string `json:"mailhost"`
	MailPort int    `json:"mailport"`
	MailUser string `json:"mailuser"`
	MailPass string `json:"mailpass"`
	MailFrom string `json:"mailfrom"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine; plain environment variables still apply.
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "5000"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "3306"), 10, 16)
		mailPort, _ := strconv.Atoi(getEnv("MAILPORT", "587"))

		// Initialize the Config struct with values from environment variables.
		config = &Config{
			AppName:  getEnv("APPNAME", "Health Plus"),
			AppEnv:   getEnv("APPENV", "development"),
			AppPort:  uint16(appPort),
			GinMode:  getEnv("GINMODE", "debug"),
			DBHost:   getEnv("DBHOST", "localhost"),
			DBPort:   uint16(dbPort),
			DBName:   getEnv("DBNAME", "healthplus"),
			DBUser:   os.Getenv("DBUSER"),
			DBPass:   os.Getenv("DBPASS"),
			MailHost: getEnv("MAILHOST", "smtp.gmail.com"),
			MailPort: mailPort,
			MailUser: os.Getenv("MAILUSER"),
			MailPass: os.Getenv("MAILPASS"),
			MailFrom: getEnv("MAILFROM", os.Getenv("MAILUSER")),
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// ConnectDatabase establishes the GORM database connection. In the test
// environment it opens a shared in-memory SQLite database so the suite needs
// no external server; otherwise it connects to MySQL using the configuration
// values. TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()

	gormCfg := &gorm.Config{TranslateError: true}

	if cfg.AppEnv == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormCfg)
	}

	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}

	return db, nil
}
