package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	LLM        LLMConfig
	GigaChat   GigaChatConfig
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	OCR        OCRConfig
	Scraper    ScraperConfig
	Extraction ExtractionConfig
	Metrics    MetricsConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	CORSOrigins  string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxConns      int
	RunMigrations bool
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// LLM providers.
const (
	ProviderGigaChat = "gigachat"
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderNone     = "none"
)

type LLMConfig struct {
	Provider string
	Timeout  time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OCRConfig selects the vision capability used to read receipt images.
// PDFs are always read locally.
type OCRConfig struct {
	Provider string
	Timeout  time.Duration
}

type ScraperConfig struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

type ExtractionConfig struct {
	// AccessKeyLookupURL must contain the {key} placeholder.
	AccessKeyLookupURL   string
	CategorizeTableItems bool
	UpcomingLimit        int
	MaxUploadSize        int64
	// DefaultDueDay places repeating obligations saved without a due day.
	DefaultDueDay int
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// DefaultAccessKeyLookupURL is the national NF-e portal query page.
const DefaultAccessKeyLookupURL = "https://www.nfe.fazenda.gov.br/portal/consultaRecaptcha.aspx?tipoConsulta=resumo&tipoConteudo=7PhJ+gAVw2g=&nfe={key}"

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	llmProvider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGigaChat))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			BodyLimit:    getInt("SERVER_BODY_LIMIT_MB", 10) * 1024 * 1024,
			CORSOrigins:  getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			DBName:        getEnv("DB_NAME", "controle_financeiro"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MaxConns:      getInt("DB_MAX_CONNS", 10),
			RunMigrations: getBool("DB_RUN_MIGRATIONS", true),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(getInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
			RefreshExp: time.Duration(getInt("JWT_REFRESH_EXPIRATION_HOURS", 168)) * time.Hour,
		},
		LLM: LLMConfig{
			Provider: llmProvider,
			Timeout:  getDuration("LLM_TIMEOUT", 30*time.Second),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: getBool("GIGACHAT_INSECURE_SKIP_VERIFY", true),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		OCR: OCRConfig{
			Provider: strings.ToLower(getEnv("OCR_PROVIDER", llmProvider)),
			Timeout:  getDuration("OCR_TIMEOUT", 60*time.Second),
		},
		Scraper: ScraperConfig{
			Timeout:     getDuration("SCRAPER_TIMEOUT", 15*time.Second),
			UserAgent:   getEnv("SCRAPER_USER_AGENT", "Mozilla/5.0 (compatible; controle-financeiro/1.0)"),
			MaxBodySize: int64(getInt("SCRAPER_MAX_BODY_MB", 5)) * 1024 * 1024,
		},
		Extraction: ExtractionConfig{
			AccessKeyLookupURL:   getEnv("ACCESS_KEY_LOOKUP_URL", DefaultAccessKeyLookupURL),
			CategorizeTableItems: getBool("EXTRACTION_CATEGORIZE_TABLE_ITEMS", false),
			UpcomingLimit:        getInt("DASHBOARD_UPCOMING_LIMIT", 3),
			MaxUploadSize:        int64(getInt("EXTRACTION_MAX_UPLOAD_MB", 10)) * 1024 * 1024,
			DefaultDueDay:        getInt("EXTRACTION_DEFAULT_DUE_DAY", 1),
		},
		Metrics: MetricsConfig{
			Enabled: getBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// DSN builds the pgx connection string.
func (c DatabaseConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getDuration accepts Go durations ("45s") as well as bare seconds ("45").
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return defaultValue
}
