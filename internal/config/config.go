package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const (
	MissingJourneyCreate = "create"
	MissingJourneyDrop   = "drop"
)

// DefaultTokenTTL é a validade padrão dos tokens de API (30 dias)
const DefaultTokenTTL = 720 * time.Hour

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Tracking       Tracking       `mapstructure:",squash"`
	Analytics      Analytics      `mapstructure:",squash"`
	EventRetention EventRetention `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
	Issuer   string        `mapstructure:"auth_issuer"`
}

type Tracking struct {
	MissingJourneyPolicy string `mapstructure:"tracking_missing_journey_policy"`
	DefaultPhoneRegion   string `mapstructure:"tracking_default_phone_region"`
}

type Analytics struct {
	Timezone          string         `mapstructure:"analytics_timezone"`
	DefaultWindowDays int            `mapstructure:"analytics_default_window_days"`
	Location          *time.Location `mapstructure:"-"`
}

type EventRetention struct {
	CronSchedule string `mapstructure:"event_retention_cron"`
	Days         int    `mapstructure:"event_retention_days"`
	Enabled      bool   `mapstructure:"event_retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_URL", "localhost:5432/leads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("SQLITE_PATH", "data/leads.db")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", DefaultTokenTTL.String())
	viper.SetDefault("AUTH_ISSUER", "lead-tracker-api")

	viper.SetDefault("TRACKING_MISSING_JOURNEY_POLICY", MissingJourneyCreate)
	viper.SetDefault("TRACKING_DEFAULT_PHONE_REGION", "US")

	viper.SetDefault("ANALYTICS_TIMEZONE", "UTC")
	viper.SetDefault("ANALYTICS_DEFAULT_WINDOW_DAYS", 30)

	// Defaults para limpeza do log bruto de eventos
	viper.SetDefault("EVENT_RETENTION_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("EVENT_RETENTION_DAYS", 90)
	viper.SetDefault("EVENT_RETENTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

// resolve valida e completa os campos derivados da configuração
func (c *Config) resolve() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case DriverPostgres:
		c.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			c.Database.Driver,
			c.Database.User,
			c.Database.Password,
			c.Database.URL,
		)
	case DriverSQLite:
		c.Database.DSN = c.Database.SQLitePath
	case DriverMemory:
	default:
		return fmt.Errorf("driver de banco de dados não suportado: %s", c.Database.Driver)
	}

	c.Tracking.MissingJourneyPolicy = strings.ToLower(strings.TrimSpace(c.Tracking.MissingJourneyPolicy))
	switch c.Tracking.MissingJourneyPolicy {
	case MissingJourneyCreate, MissingJourneyDrop:
	case "":
		c.Tracking.MissingJourneyPolicy = MissingJourneyCreate
	default:
		return fmt.Errorf("política de jornada ausente inválida: %s", c.Tracking.MissingJourneyPolicy)
	}

	location, err := time.LoadLocation(c.Analytics.Timezone)
	if err != nil {
		return fmt.Errorf("fuso horário de analytics inválido %q: %w", c.Analytics.Timezone, err)
	}
	c.Analytics.Location = location

	if c.Analytics.DefaultWindowDays <= 0 {
		c.Analytics.DefaultWindowDays = 30
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
