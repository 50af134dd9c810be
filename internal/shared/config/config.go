package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string

	LLMProvider    string
	LLMModel       string
	LLMTemperature float32
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAITimeout  time.Duration
	GeminiAPIKey   string
	GeminiModel    string
	OllamaHost     string
	OllamaModel    string

	DatabaseURL string
	JWTSecret   string
	SessionTTL  time.Duration

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	RetainUploads   bool

	DispatchRate  float64
	DispatchBurst int
}

// Load reads configuration from environment variables with sensible defaults.
// Values from the YAML file named by CONFIG_FILE fill keys the environment leaves unset.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	src := source{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		file, err := readFile(path)
		if err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		} else {
			src.file = file
		}
	}

	env := normalizeEnv(src.get("ENV", "dev"))
	dbURL := src.get("DATABASE_URL", "")
	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            src.get("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(src.get("CORS_ALLOW_ORIGINS", "*")),
		LogLevel:        src.get("LOG_LEVEL", "info"),

		LLMProvider:    normalizeProvider(src.get("LLM_PROVIDER", "openai")),
		LLMModel:       src.get("LLM_MODEL", "gpt-4o-mini"),
		LLMTemperature: float32(src.float("LLM_TEMPERATURE", 0.7)),
		OpenAIAPIKey:   src.get("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  src.get("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAITimeout:  time.Duration(src.int("OPENAI_TIMEOUT_SECONDS", 120)) * time.Second,
		GeminiAPIKey:   src.get("GEMINI_API_KEY", ""),
		GeminiModel:    src.get("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaHost:     src.get("OLLAMA_HOST", "http://127.0.0.1:11434"),
		OllamaModel:    src.get("OLLAMA_MODEL", "gemma3:latest"),

		DatabaseURL: dbURL,
		JWTSecret:   src.get("JWT_SECRET", ""),
		SessionTTL:  src.duration("SESSION_TTL", 24*time.Hour),

		ObjectStoreType: normalizeStoreType(src.get("OBJECT_STORE", "local")),
		LocalStoreDir:   src.get("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       src.get("AWS_REGION", ""),
		S3Bucket:        src.get("S3_BUCKET", ""),
		S3Prefix:        src.get("S3_PREFIX", ""),
		SSEKMSKeyID:     src.get("SSE_KMS_KEY_ID", ""),
		RetainUploads:   src.bool("RETAIN_UPLOADS", false),

		DispatchRate:  src.float("RATE_LIMIT_DISPATCH_RPS", 1),
		DispatchBurst: src.int("RATE_LIMIT_DISPATCH_BURST", 10),
	}
}

// LLMCredential returns the credential the selected provider needs. Ollama needs none.
func (c Config) LLMCredential() string {
	switch c.LLMProvider {
	case "gemini":
		return c.GeminiAPIKey
	case "ollama":
		return "local"
	default:
		return c.OpenAIAPIKey
	}
}

type source struct {
	file map[string]string
}

func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	out := map[string]string{}
	if err := yaml.Unmarshal([]byte(expanded), &out); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return out, nil
}

func (s source) get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if val := strings.TrimSpace(s.file[key]); val != "" {
		return val
	}
	return def
}

func (s source) int(key string, def int) int {
	raw := s.get(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q; using %d", key, raw, def)
		return def
	}
	return val
}

func (s source) float(key string, def float64) float64 {
	raw := s.get(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		log.Printf("config %s invalid float %q; using %v", key, raw, def)
		return def
	}
	return val
}

func (s source) bool(key string, def bool) bool {
	raw := s.get(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func (s source) duration(key string, def time.Duration) time.Duration {
	raw := s.get(key, "")
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid duration %q; using %s", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	case "ollama":
		return "ollama"
	default:
		return "openai"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
