package config

import (
	"fmt"
	"time"
)

// Settings is the typed view of the env map used to wire the server.
type Settings struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AcceptedOrigins []string
	AdminJWTSecret  string

	// SiteBaseURL is stripped from stored image paths and prefixed on output.
	SiteBaseURL string
	// LegacyAssetFolder is the folder name older editors stored in front of uploads/.
	LegacyAssetFolder string

	Theme ThemeColors

	UploadBucket        string
	UploadPublicBaseURL string
	UploadMaxBytes      int64

	Database DatabaseSettings
}

// DatabaseSettings describes the primary postgres connection and optional read replicas.
type DatabaseSettings struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	ReplicaHosts []string
}

// DSN builds the connection string for host, which is the primary or a replica.
func (d DatabaseSettings) DSN(host string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type ThemeColors struct {
	Primary    string
	Secondary  string
	Accent     string
	Text       string
	Background string
}

const defaultUploadMaxBytes = 5 * 1024 * 1024

func Load(c map[string]string) Settings {
	uploadMaxBytes := GetInt64(c, "UPLOAD_MAX_BYTES", defaultUploadMaxBytes)
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = defaultUploadMaxBytes
	}

	return Settings{
		Port:              GetString(c, "PORT", "8080"),
		ReadTimeout:       time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout:      time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:       time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		AcceptedOrigins:   GetList(c, "ACCEPTED_ORIGINS"),
		AdminJWTSecret:    GetString(c, "ADMIN_JWT_SECRET", ""),
		SiteBaseURL:       GetString(c, "SITE_BASE_URL", ""),
		LegacyAssetFolder: GetString(c, "LEGACY_ASSET_FOLDER", "public"),
		Theme: ThemeColors{
			Primary:    GetString(c, "THEME_PRIMARY", "#2563eb"),
			Secondary:  GetString(c, "THEME_SECONDARY", "#7c3aed"),
			Accent:     GetString(c, "THEME_ACCENT", "#f59e0b"),
			Text:       GetString(c, "THEME_TEXT", "#111827"),
			Background: GetString(c, "THEME_BACKGROUND", "#ffffff"),
		},
		UploadBucket:        GetString(c, "UPLOAD_BUCKET", ""),
		UploadPublicBaseURL: GetString(c, "UPLOAD_PUBLIC_BASE_URL", ""),
		UploadMaxBytes:      uploadMaxBytes,
		Database: DatabaseSettings{
			Host:         GetString(c, "DB_HOST", "localhost"),
			Port:         GetString(c, "DB_PORT", "5432"),
			User:         GetString(c, "DB_USER", "postgres"),
			Password:     GetString(c, "DB_PASSWORD", ""),
			Name:         GetString(c, "DB_NAME", "postgres"),
			SSLMode:      GetString(c, "DB_SSLMODE", "require"),
			ReplicaHosts: GetList(c, "DB_REPLICA_HOSTS"),
		},
	}
}
