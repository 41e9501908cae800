package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Broker    BrokerConfig    `yaml:"broker"`
	Mail      MailConfig      `yaml:"mail"`
	Contact   ContactConfig   `yaml:"contact"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
	// SlowQuery is the duration above which a statement is logged at warn.
	// Zero disables the tracer.
	SlowQuery time.Duration `yaml:"slow_query" env:"DATABASE_SLOW_QUERY" env-default:"500ms"`
}

// AuthConfig holds token signing and bootstrap account settings.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"     env:"AUTH_JWT_SECRET"     env-required:"true"`
	JWTIssuer     string        `yaml:"jwt_issuer"     env:"AUTH_JWT_ISSUER"     env-default:"andys"`
	TokenTTL      time.Duration `yaml:"token_ttl"      env:"AUTH_TOKEN_TTL"      env-default:"5h"`
	BcryptCost    int           `yaml:"bcrypt_cost"    env:"AUTH_BCRYPT_COST"    env-default:"10"`
	AdminUsername string        `yaml:"admin_username" env:"AUTH_ADMIN_USERNAME" env-default:"admin"`
	// AdminPassword enables the startup admin bootstrap when non-empty.
	AdminPassword string `yaml:"admin_password" env:"AUTH_ADMIN_PASSWORD"`
}

// Broker drivers.
const (
	BrokerGoChannel = "gochannel"
	BrokerNATS      = "nats"
)

// BrokerConfig selects and tunes the message queue carrying email references.
type BrokerConfig struct {
	Driver           string        `yaml:"driver"            env:"BROKER_DRIVER"            env-default:"gochannel"`
	URL              string        `yaml:"url"               env:"BROKER_URL"               env-default:"nats://127.0.0.1:4222"`
	Topic            string        `yaml:"topic"             env:"BROKER_TOPIC"             env-default:"email_send"`
	QueueGroup       string        `yaml:"queue_group"       env:"BROKER_QUEUE_GROUP"       env-default:"andys"`
	DurableName      string        `yaml:"durable_name"      env:"BROKER_DURABLE_NAME"      env-default:"andys-email"`
	SubscribersCount int           `yaml:"subscribers_count" env:"BROKER_SUBSCRIBERS_COUNT" env-default:"1"`
	AckWait          time.Duration `yaml:"ack_wait"          env:"BROKER_ACK_WAIT"          env-default:"30s"`
	CloseTimeout     time.Duration `yaml:"close_timeout"     env:"BROKER_CLOSE_TIMEOUT"     env-default:"10s"`
	BufferSize       int64         `yaml:"buffer_size"       env:"BROKER_BUFFER_SIZE"       env-default:"256"`
	// StartupRequeue caps the CREATED emails the gochannel driver
	// republishes each time the consumer subscribes.
	StartupRequeue int `yaml:"startup_requeue" env:"BROKER_STARTUP_REQUEUE" env-default:"500"`
	// Publishing stops for BreakerTimeout after BreakerFailures consecutive errors.
	BreakerFailures uint32        `yaml:"breaker_failures" env:"BROKER_BREAKER_FAILURES" env-default:"5"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"  env:"BROKER_BREAKER_TIMEOUT"  env-default:"30s"`
}

// Mail drivers.
const (
	MailSentinel = "sentinel"
	MailSES      = "ses"
)

// MailConfig selects the delivery backend used by the email consumer.
type MailConfig struct {
	Driver        string `yaml:"driver"         env:"MAIL_DRIVER"         env-default:"sentinel"`
	FailureSuffix string `yaml:"failure_suffix" env:"MAIL_FAILURE_SUFFIX" env-default:"failed.email"`
	FromAddress   string `yaml:"from_address"   env:"MAIL_FROM_ADDRESS"`
	SESRegion     string `yaml:"ses_region"     env:"MAIL_SES_REGION"     env-default:"us-east-1"`
	SESAccessKey  string `yaml:"ses_access_key" env:"MAIL_SES_ACCESS_KEY"`
	SESSecretKey  string `yaml:"ses_secret_key" env:"MAIL_SES_SECRET_KEY"`
}

// ContactConfig holds Contact-Us workflow settings.
type ContactConfig struct {
	SupportEmail    string        `yaml:"support_email"    env:"CONTACT_SUPPORT_EMAIL"    env-default:"support@mailinator.com"`
	DuplicateWindow time.Duration `yaml:"duplicate_window" env:"CONTACT_DUPLICATE_WINDOW" env-default:"168h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings. List values are comma separated.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"3600"`
}

// Origins returns AllowedOrigins split into a trimmed list.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods returns AllowedMethods split into a trimmed list.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers returns AllowedHeaders split into a trimmed list.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

// RateLimitConfig bounds the public write endpoints per client IP.
type RateLimitConfig struct {
	ContactRequests int           `yaml:"contact_requests" env:"RATE_LIMIT_CONTACT_REQUESTS" env-default:"5"`
	AuthRequests    int           `yaml:"auth_requests"    env:"RATE_LIMIT_AUTH_REQUESTS"    env-default:"10"`
	Window          time.Duration `yaml:"window"           env:"RATE_LIMIT_WINDOW"           env-default:"1m"`
	// TrustProxy keys the limiter on X-Forwarded-For and friends. Enable it
	// only behind a proxy that overwrites those headers.
	TrustProxy bool `yaml:"trust_proxy" env:"RATE_LIMIT_TRUST_PROXY" env-default:"false"`
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
