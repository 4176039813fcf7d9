package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Ledger      LedgerConfig   `mapstructure:"ledger"`
	Account     AccountConfig  `mapstructure:"account"`
	Pin         PinConfig      `mapstructure:"pin"`
	GiftCode    GiftCodeConfig `mapstructure:"giftCode"`
	PayToken    PayTokenConfig `mapstructure:"payToken"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      int           `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// AuthConfig contains session settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"` // hours
}

// LedgerConfig contains balance movement settings
type LedgerConfig struct {
	TaxRates           map[string]string `mapstructure:"taxRates"`
	TaxSinkAccountUUID string            `mapstructure:"taxSinkAccountUUID"`
	SalaryCooldown     time.Duration     `mapstructure:"salaryCooldown"` // hours
	MaxAmount          string            `mapstructure:"maxAmount"`
	FractionDigits     int32             `mapstructure:"fractionDigits"`
}

// AccountConfig contains account number settings
type AccountConfig struct {
	NumberPrefix string `mapstructure:"numberPrefix"`
}

// PinConfig contains PIN lockout settings
type PinConfig struct {
	LockoutThreshold int           `mapstructure:"lockoutThreshold"`
	LockoutDuration  time.Duration `mapstructure:"lockoutDuration"` // minutes
}

// GiftCodeConfig contains gift code settings
type GiftCodeConfig struct {
	TTL time.Duration `mapstructure:"ttl"` // hours
}

// PayTokenConfig contains payment token settings
type PayTokenConfig struct {
	TTL                 time.Duration `mapstructure:"ttl"` // minutes
	WebhookMaxLength    int           `mapstructure:"webhookMaxLength"`
	WebhookAllowedHosts []string      `mapstructure:"webhookAllowedHosts"`
}
