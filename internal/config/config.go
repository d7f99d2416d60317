package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sarvaliya/folio/internal/presigned"
)

// Config aggregates runtime configuration for the portfolio API.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Storage  StorageConfig
	KV       KVConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
	Log      LogConfig
	Content  ContentConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host               string
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	RoutePrefix        string
	MaxMultipartMemory int64
	ErrorFormat        string
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PostgresConfig contains PostgreSQL connection details.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// MaxConns caps the pool; the KV workload touches a single row.
	MaxConns        int32
	MaxConnIdleTime time.Duration
}

// DSN returns the PostgreSQL DSN string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// StorageConfig carries object store connection and bucket information.
type StorageConfig struct {
	Driver          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
	BucketPrefix    string
	SignedURLTTL    time.Duration
}

// ResumeBucket is the physical bucket name backing the resume namespace.
func (s StorageConfig) ResumeBucket() string {
	return s.BucketPrefix + "-resumes"
}

// ImageBucket is the physical bucket name backing the image namespace.
func (s StorageConfig) ImageBucket() string {
	return s.BucketPrefix + "-images"
}

// KVConfig selects the pointer store backend.
type KVConfig struct {
	Driver     string
	SQLitePath string
}

// AuthConfig holds the credentials accepted in the Authorization header.
type AuthConfig struct {
	AnonKey   string
	JWTSecret string
	Disabled  bool
}

// CORSConfig groups cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// ContentConfig points at the static portfolio content file.
type ContentConfig struct {
	Path string
}

// Load reads configuration values from the environment (and a .env file when
// present), applying defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host:               getString("FOLIO_API_HOST", "0.0.0.0"),
			Port:               getInt("FOLIO_API_PORT", 8080),
			ReadTimeout:        getDuration("FOLIO_API_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:       getDuration("FOLIO_API_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:        getDuration("FOLIO_API_IDLE_TIMEOUT", 60*time.Second),
			RoutePrefix:        normalizePrefix(getString("FOLIO_ROUTE_PREFIX", "/make-server-654b3b0b")),
			MaxMultipartMemory: getInt64("FOLIO_MAX_MULTIPART_MEMORY", 16<<20),
			ErrorFormat:        strings.ToLower(getString("FOLIO_ERROR_FORMAT", "text")),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "localhost"),
			Port:     getInt("POSTGRES_PORT", 5432),
			User:     getString("POSTGRES_USER", "folio_app"),
			Password: getString("POSTGRES_PASSWORD", "change-me"),
			Database: getString("POSTGRES_DB", "folio"),
			SSLMode:  strings.ToLower(getString("POSTGRES_SSL_MODE", "disable")),

			MaxConns:        int32(getInt("POSTGRES_MAX_CONNS", 4)),
			MaxConnIdleTime: getDuration("POSTGRES_MAX_CONN_IDLE", 5*time.Minute),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(getString("STORAGE_DRIVER", "minio")),
			Endpoint:        getString("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getString("STORAGE_ACCESS_KEY", "folio"),
			SecretAccessKey: getString("STORAGE_SECRET_KEY", "change-me-strong-password"),
			UseSSL:          getBool("STORAGE_USE_SSL", false),
			Region:          getString("STORAGE_REGION", "us-east-1"),
			BucketPrefix:    getString("STORAGE_BUCKET_PREFIX", "make-654b3b0b"),
			SignedURLTTL:    getDuration("STORAGE_SIGNED_URL_TTL", presigned.MaxTTL),
		},
		KV: KVConfig{
			Driver:     strings.ToLower(getString("KV_DRIVER", "postgres")),
			SQLitePath: getString("KV_SQLITE_PATH", "folio.db"),
		},
		Auth: AuthConfig{
			AnonKey:   getString("FOLIO_ANON_KEY", ""),
			JWTSecret: getString("FOLIO_JWT_SECRET", ""),
			Disabled:  getBool("FOLIO_AUTH_DISABLED", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("FOLIO_CORS_ORIGINS", []string{"*"}),
			MaxAge:         getInt("FOLIO_CORS_MAX_AGE", 600),
		},
		Metrics: MetricsConfig{
			PrometheusPath: getString("FOLIO_METRICS_PATH", "/metrics"),
		},
		Log: LogConfig{
			Level: getString("LOG_LEVEL", "info"),
		},
		Content: ContentConfig{
			Path: getString("FOLIO_CONTENT_PATH", "portfolio.yaml"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "minio", "s3":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.KV.Driver {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported KV_DRIVER %q", c.KV.Driver)
	}
	switch c.Server.ErrorFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported FOLIO_ERROR_FORMAT %q", c.Server.ErrorFormat)
	}
	if strings.TrimSpace(c.Storage.BucketPrefix) == "" {
		return fmt.Errorf("STORAGE_BUCKET_PREFIX must not be empty")
	}
	if c.Storage.SignedURLTTL <= 0 || c.Storage.SignedURLTTL > presigned.MaxTTL {
		c.Storage.SignedURLTTL = presigned.MaxTTL
	}
	if !c.Auth.Disabled && c.Auth.AnonKey == "" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("one of FOLIO_ANON_KEY or FOLIO_JWT_SECRET is required unless FOLIO_AUTH_DISABLED is set")
	}
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
