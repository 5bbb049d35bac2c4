package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Meta             Meta             `mapstructure:",squash"`
	Render           Render           `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Sync             Sync             `mapstructure:",squash"`
	Fetch            Fetch            `mapstructure:",squash"`
	Bulk             Bulk             `mapstructure:",squash"`
	AutoSync         AutoSync         `mapstructure:",squash"`
	WorkspaceCleanup WorkspaceCleanup `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"meta_url"`
	Version        string        `mapstructure:"meta_version"`
	AccessToken    string        `mapstructure:"meta_access_token"`
	AppID          string        `mapstructure:"meta_app_id"`
	AppSecret      string        `mapstructure:"meta_app_secret"`
	LongLivedToken string        `mapstructure:"meta_long_lived_token"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
	PageLimit      int           `mapstructure:"meta_page_limit"`
	TokenExpiresAt time.Time     `mapstructure:"-"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Sync controla o coordenador de sincronização com a plataforma
type Sync struct {
	TTL time.Duration `mapstructure:"sync_ttl"`
}

type Fetch struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
}

// Bulk controla os atrasos visíveis ao usuário nas operações em lote
type Bulk struct {
	RefreshDelay          time.Duration `mapstructure:"bulk_refresh_delay"`
	CloseDelay            time.Duration `mapstructure:"bulk_close_delay"`
	ErrorCloseDelay       time.Duration `mapstructure:"bulk_error_close_delay"`
	ArchiveSimulatedDelay time.Duration `mapstructure:"archive_simulated_delay"`
}

type AutoSync struct {
	CronSchedule      string `mapstructure:"auto_sync_cron"`
	MaxConcurrentJobs int    `mapstructure:"auto_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"auto_sync_enabled"`
}

type WorkspaceCleanup struct {
	CronSchedule string        `mapstructure:"workspace_cleanup_cron"`
	IdleTimeout  time.Duration `mapstructure:"workspace_idle_timeout"`
	Enabled      bool          `mapstructure:"workspace_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_manager?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("META_PAGE_LIMIT", 100)

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("SYNC_TTL", "30s")       // Janela em que uma sincronização é considerada recente
	viper.SetDefault("DEFAULT_PAGE_SIZE", 10) // Tamanho de página padrão

	viper.SetDefault("BULK_REFRESH_DELAY", "2s")          // Tempo antes de recarregar os dados após um lote
	viper.SetDefault("BULK_CLOSE_DELAY", "3s")            // Fechamento do progresso em sucesso ou parcial
	viper.SetDefault("BULK_ERROR_CLOSE_DELAY", "6s")      // Fechamento do progresso em erro
	viper.SetDefault("ARCHIVE_SIMULATED_DELAY", "800ms") // Arquivamento ainda não tem contrato remoto

	viper.SetDefault("AUTO_SYNC_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("AUTO_SYNC_MAX_CONCURRENT_JOBS", 2)
	viper.SetDefault("AUTO_SYNC_ENABLED", false)

	viper.SetDefault("WORKSPACE_CLEANUP_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("WORKSPACE_IDLE_TIMEOUT", "2h")
	viper.SetDefault("WORKSPACE_CLEANUP_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

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

	config.normalize()

	return config, nil
}

// normalize deriva os campos calculados e corrige valores fora do esperado
func (c *Config) normalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	if c.Sync.TTL <= 0 {
		logrus.Warnf("SYNC_TTL inválido (%s), usando 30s", c.Sync.TTL)
		c.Sync.TTL = 30 * time.Second
	}

	if c.Fetch.DefaultPageSize <= 0 {
		c.Fetch.DefaultPageSize = 10
	}

	if c.Meta.PageLimit <= 0 {
		c.Meta.PageLimit = 100
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
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
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
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
