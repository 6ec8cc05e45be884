package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath        = "CONFIG_PATH"
	EnvDBConnection      = "DB_CONNECTION"
	EnvJWTSecret         = "JWT_SECRET"
	EnvJWTExpiry         = "JWT_EXPIRY"
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvGeminiModel       = "GEMINI_MODEL"
	EnvCheckoutEndpoint  = "CHECKOUT_ENDPOINT"
	EnvCheckoutSecretKey = "CHECKOUT_SECRET_KEY"
	EnvCheckoutOrigin    = "CHECKOUT_ORIGIN"
	EnvSheetsCredentials = "SHEETS_CREDENTIALS_FILE"
	EnvAdminEmail        = "ADMIN_EMAIL"
	EnvAdminPassword     = "ADMIN_PASSWORD"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// ErrMissingDatabaseDSN indicates no database DSN is present in the config file.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database-dsn` or `database.dsn` in config file)")

// JWTConfig holds JWT secret and expiry settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// GeneratorConfig holds model settings for the generation pipeline.
type GeneratorConfig struct {
	APIKey string `yaml:"api-key"`
	Model  string `yaml:"model"`
}

// CheckoutConfig holds payment provider settings.
type CheckoutConfig struct {
	Endpoint  string `yaml:"endpoint"`
	SecretKey string `yaml:"secret-key"`
	Origin    string `yaml:"origin"`
}

// SheetsConfig holds the spreadsheet integration settings.
type SheetsConfig struct {
	CredentialsFile string `yaml:"credentials-file"`
}

// AdminConfig holds the bootstrap admin account settings.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// LoadDatabaseDSN reads the database DSN from the YAML config file.
func LoadDatabaseDSN(configPath string) (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		return dsn, nil
	}

	// fileConfig maps the YAML fields needed for DSN resolution.
	type fileConfig struct {
		DatabaseDSN string `yaml:"database-dsn"`
		Database    struct {
			DSN string `yaml:"dsn"`
		} `yaml:"database"`
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return "", fmt.Errorf("parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		return dsn, nil
	}
	return "", ErrMissingDatabaseDSN
}

// defaultJWTExpiry is used when the config omits or invalidates JWT expiry.
const defaultJWTExpiry = 30 * 24 * time.Hour

// LoadJWTConfig loads JWT settings from the YAML config file.
func LoadJWTConfig(configPath string) (JWTConfig, error) {
	// fileConfig maps the YAML fields needed for JWT settings.
	type fileConfig struct {
		JWT JWTConfig `yaml:"jwt"`
	}

	result := JWTConfig{Expiry: defaultJWTExpiry}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.JWT
		}
	}

	if secret := strings.TrimSpace(os.Getenv(EnvJWTSecret)); secret != "" {
		result.Secret = secret
	}
	if expiryRaw := strings.TrimSpace(os.Getenv(EnvJWTExpiry)); expiryRaw != "" {
		if expiry, errParse := time.ParseDuration(expiryRaw); errParse == nil && expiry > 0 {
			result.Expiry = expiry
		}
	}

	if result.Expiry <= 0 {
		result.Expiry = defaultJWTExpiry
	}
	return result, nil
}

// LoadGeneratorConfig loads model settings, environment first.
func LoadGeneratorConfig(configPath string) GeneratorConfig {
	// fileConfig maps the YAML fields needed for generator settings.
	type fileConfig struct {
		Generator GeneratorConfig `yaml:"generator"`
	}

	var result GeneratorConfig

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.Generator
		}
	}

	if key := strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)); key != "" {
		result.APIKey = key
	}
	if model := strings.TrimSpace(os.Getenv(EnvGeminiModel)); model != "" {
		result.Model = model
	}
	return result
}

// LoadCheckoutConfig loads payment provider settings, environment first.
func LoadCheckoutConfig(configPath string) CheckoutConfig {
	// fileConfig maps the YAML fields needed for checkout settings.
	type fileConfig struct {
		Checkout CheckoutConfig `yaml:"checkout"`
	}

	var result CheckoutConfig

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.Checkout
		}
	}

	if endpoint := strings.TrimSpace(os.Getenv(EnvCheckoutEndpoint)); endpoint != "" {
		result.Endpoint = endpoint
	}
	if key := strings.TrimSpace(os.Getenv(EnvCheckoutSecretKey)); key != "" {
		result.SecretKey = key
	}
	if origin := strings.TrimSpace(os.Getenv(EnvCheckoutOrigin)); origin != "" {
		result.Origin = origin
	}
	return result
}

// LoadSheetsCredentials resolves and reads the spreadsheet service account
// credentials. A missing configuration returns nil without error; the
// integration is optional.
func LoadSheetsCredentials(configPath string) ([]byte, error) {
	// fileConfig maps the YAML fields needed for the sheets integration.
	type fileConfig struct {
		Sheets SheetsConfig `yaml:"sheets"`
	}

	credentialsPath := strings.TrimSpace(os.Getenv(EnvSheetsCredentials))
	if credentialsPath == "" {
		data, errRead := os.ReadFile(configPath)
		if errRead == nil {
			var cfg fileConfig
			if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
				credentialsPath = strings.TrimSpace(cfg.Sheets.CredentialsFile)
			}
		}
	}
	if credentialsPath == "" {
		return nil, nil
	}

	credentials, errRead := os.ReadFile(credentialsPath)
	if errRead != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", errRead)
	}
	return credentials, nil
}

// LoadAdminConfig loads the bootstrap admin account, environment first.
func LoadAdminConfig(configPath string) AdminConfig {
	// fileConfig maps the YAML fields needed for admin bootstrap.
	type fileConfig struct {
		Admin AdminConfig `yaml:"admin"`
	}

	var result AdminConfig

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.Admin
		}
	}

	if email := strings.TrimSpace(os.Getenv(EnvAdminEmail)); email != "" {
		result.Email = email
	}
	if password := strings.TrimSpace(os.Getenv(EnvAdminPassword)); password != "" {
		result.Password = password
	}
	return result
}
