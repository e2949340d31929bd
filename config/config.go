// Package config reads the portal's runtime configuration from the environment.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort          = 5000
	defaultSecret        = "change-this-secret-key"
	defaultLang          = "ru-RU"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
	defaultLoginRate     = 10
	maxUploadSize        = 10 << 20
)

// LoadEnv reads a .env file from the working directory when one exists.
// Variables already present in the environment win.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("PORTAL_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("PORTAL_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("PORTAL_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/portal"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("PORTAL_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetUploadFolder is where news images are stored; it is served under /uploads.
func GetUploadFolder() string {
	uploadFolder := os.Getenv("PORTAL_UPLOAD_FOLDER")
	if uploadFolder == "" {
		uploadFolder = "uploads"
	}
	return uploadFolder
}

func GetMaxUploadSize() int64 {
	return maxUploadSize
}

func GetListen() string {
	return os.Getenv("PORTAL_LISTEN")
}

func GetPort() int {
	return getInt("PORTAL_PORT", defaultPort)
}

// GetCertFile and GetKeyFile enable HTTPS when both point to a usable key pair.
func GetCertFile() string {
	return os.Getenv("PORTAL_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("PORTAL_KEY_FILE")
}

// GetWebDomain restricts the panel to a single host name when set.
func GetWebDomain() string {
	return os.Getenv("PORTAL_WEB_DOMAIN")
}

func GetSecretKey() string {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return defaultSecret
	}
	return secret
}

// GetSessionMaxAge returns the session lifetime in minutes, 0 means a browser session.
func GetSessionMaxAge() int {
	return getInt("PORTAL_SESSION_MAX_AGE", 0)
}

func GetLang() string {
	lang := os.Getenv("PORTAL_LANG")
	if lang == "" {
		return defaultLang
	}
	return lang
}

// GetBootstrapUsername names the built-in administrator. The account is created on
// first start, is always kept in the admin role and can not be deleted.
func GetBootstrapUsername() string {
	username := strings.TrimSpace(os.Getenv("PORTAL_ADMIN_USERNAME"))
	if username == "" {
		return defaultAdminUsername
	}
	return username
}

func GetBootstrapPassword() string {
	password := os.Getenv("PORTAL_ADMIN_PASSWORD")
	if password == "" {
		return defaultAdminPassword
	}
	return password
}

// GetLoginRate is the number of login attempts allowed per client IP per minute.
func GetLoginRate() int {
	return getInt("PORTAL_LOGIN_RATE", defaultLoginRate)
}

func getInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true") || os.Getenv(key) == "1"
}
