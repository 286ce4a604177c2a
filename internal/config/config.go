package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string // ENV: production, development, etc.
	LogLevel    string

	MongoURI      string
	MongoDatabase string
	PostgresURI   string
	RedisURI      string

	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	AllowedHost    string   // production host check; empty disables
	TrustProxy     bool     // take the client IP from X-Forwarded-For
	EncryptionKey  string   // base64 32-byte key for recovery emails; optional

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	MinioEndpoint  string // empty disables backup archiving
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	AutosaveDebounce time.Duration
	CacheTTL         time.Duration
	SessionTTL       time.Duration
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		MongoURI:      getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/biography")),
		MongoDatabase: getEnv("MONGODB_DATABASE", ""),
		PostgresURI:   getEnv("POSTGRES_URI", "postgres://localhost:5432/biography?sslmode=disable"),
		RedisURI:      getEnv("REDIS_URI", "redis://localhost:6379/0"),

		AllowedOrigins: allowedOrigins,
		AllowedHost:    getEnv("ALLOWED_HOST", ""),
		TrustProxy:     getBool("TRUST_PROXY", false),
		EncryptionKey:  getEnv("ENCRYPTION_KEY", ""),

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "biography-backups"),
		MinioUseSSL:    getBool("MINIO_USE_SSL", false),

		AutosaveDebounce: getDuration("AUTOSAVE_DEBOUNCE", 2*time.Second),
		CacheTTL:         getDuration("PROFILE_CACHE_TTL", 30*24*time.Hour),
		SessionTTL:       getDuration("SESSION_TTL", 7*24*time.Hour),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// MinioEnabled reports whether exports should also be archived.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != ""
}

// CloudinaryEnabled reports whether image uploads are available.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// getDuration accepts Go durations ("2s", "168h").
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
