package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	InternalAPIKey string `env:"INTERNAL_API_KEY"`
	BaseURL        string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	MigrationsDir  string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	RabbitMQ RabbitMQConfig `envPrefix:"RABBITMQ_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Checkout CheckoutConfig `envPrefix:"CHECKOUT_"`
	TryOn    TryOnConfig    `envPrefix:"TRYON_"`
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DRIVER" envDefault:"mysql"`
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            int           `env:"PORT" envDefault:"3306"`
	User            string        `env:"USER" envDefault:"root"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME" envDefault:"eyewear"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
}

type RedisConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type RabbitMQConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5672"`
	User     string `env:"USER" envDefault:"guest"`
	Password string `env:"PASSWORD" envDefault:"guest"`
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	JWTExpiration  time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	SessionExpTime time.Duration `env:"SESSION_EXP_TIME" envDefault:"24h"`
	OTPExpiration  time.Duration `env:"OTP_EXPIRATION" envDefault:"5m"`
}

type CheckoutConfig struct {
	CODThreshold       decimal.Decimal `env:"COD_THRESHOLD" envDefault:"500"`
	VerificationWindow time.Duration   `env:"VERIFICATION_WINDOW" envDefault:"300s"`
	PaymentRequestID   string          `env:"PAYMENT_REQUEST_ID" envDefault:"eyewear.store@upi"`
}

type TryOnConfig struct {
	BaseWidthPercent    float64       `env:"BASE_WIDTH_PERCENT" envDefault:"25"`
	BrightnessThreshold uint8         `env:"BRIGHTNESS_THRESHOLD" envDefault:"240"`
	FetchTimeout        time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	IdleTimeout         time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	db := c.Database
	if db.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		db.User, db.Password, db.Host, db.Port, db.Name)
}

// GetMigrationURL returns the golang-migrate database URL.
func (c *Config) GetMigrationURL() string {
	db := c.Database
	if db.Driver == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			db.User, db.Password, db.Host, db.Port, db.Name, db.SSLMode)
	}
	return "mysql://" + c.GetDSN()
}
