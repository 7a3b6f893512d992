package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Drivers de armazenamento suportados
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY não configurada")

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Port               string
	Mode               string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// DatabaseConfig contém as configurações para conexão com o PostgreSQL
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

// ConnectionString retorna a URL de conexão. DATABASE_URL tem precedência.
func (c DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// StorageConfig contém as configurações de persistência e arquivos
type StorageConfig struct {
	Driver        string
	UploadsDir    string
	PublicBaseURL string
}

// AuthConfig contém as configurações de sessão
type AuthConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
}

// KitchenConfig contém as cadências da tela da cozinha
type KitchenConfig struct {
	Tick         time.Duration
	RefreshEvery int
}

// BrokerConfig contém as configurações do RabbitMQ. URL vazia desativa a publicação.
type BrokerConfig struct {
	URL      string
	Exchange string
}

// Config agrupa todas as configurações da aplicação
type Config struct {
	Server               ServerConfig
	Database             DatabaseConfig
	Storage              StorageConfig
	Auth                 AuthConfig
	Kitchen              KitchenConfig
	Broker               BrokerConfig
	DefaultServiceCharge decimal.Decimal
}

// Load lê o arquivo .env (se existir) e as variáveis de ambiente
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("erro ao ler arquivo .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	kitchenRefresh := v.GetInt("KITCHEN_REFRESH_SECONDS")
	if kitchenRefresh <= 0 {
		kitchenRefresh = 10
	}

	serviceCharge, err := decimal.NewFromString(v.GetString("DEFAULT_SERVICE_CHARGE_PERCENT"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_SERVICE_CHARGE_PERCENT inválida: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			Mode:               v.GetString("SERVER_MODE"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxConnections:  v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: time.Duration(v.GetInt("DB_MAX_LIFETIME")) * time.Second,
			MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
			UploadsDir:    v.GetString("UPLOADS_DIR"),
			PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET_KEY"),
			JWTExpiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
		},
		Kitchen: KitchenConfig{
			Tick:         time.Second,
			RefreshEvery: kitchenRefresh,
		},
		Broker: BrokerConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		DefaultServiceCharge: serviceCharge,
	}
	return cfg, cfg.Validate()
}

// Validate verifica as combinações obrigatórias
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER inválido: %q", c.Storage.Driver)
	}
	if c.Server.Mode != modeRelease && c.Server.Mode != modeDebug && c.Server.Mode != modeTest {
		return fmt.Errorf("SERVER_MODE inválido: %q", c.Server.Mode)
	}
	return nil
}

// Modos aceitos pelo gin
const (
	modeDebug   = "debug"
	modeRelease = "release"
	modeTest    = "test"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", modeDebug)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "pdv_restaurante")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 2)
	v.SetDefault("DB_MAX_LIFETIME", 300)
	v.SetDefault("MIGRATIONS_PATH", "migrations")

	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")

	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("KITCHEN_REFRESH_SECONDS", 10)
	v.SetDefault("RABBITMQ_EXCHANGE", "pdv.events")
	v.SetDefault("DEFAULT_SERVICE_CHARGE_PERCENT", "0")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
