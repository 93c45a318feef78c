package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderFake   = "fake"
	ProviderNone   = ""
)

type Config struct {
	Port           string
	Env            string
	DBPath         string
	AllowedOrigins []string
	LLM            LLMConfig
}

type LLMConfig struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	RPS       float64
	Burst     int
	CacheSize int
}

// Load reads .env (when present), flags, and environment variables.
// Environment variables win over flag defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":3001", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:           *port,
		Env:            env,
		DBPath:         firstNonEmpty(strings.TrimSpace(os.Getenv("DB_PATH")), "movies.sqlite"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		LLM:            loadLLMConfig(),
	}, nil
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	openaiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if provider == ProviderNone {
		// Infer from whichever key is present. No key means no provider,
		// which the pipeline treats as a normal fallback case.
		switch {
		case geminiKey != "":
			provider = ProviderGemini
		case openaiKey != "":
			provider = ProviderOpenAI
		}
	}

	cfg := LLMConfig{
		Provider:  provider,
		Timeout:   envDurationMS("LLM_TIMEOUT_MS", 12000*time.Millisecond),
		RPS:       envFloat("LLM_RPS", 0),
		Burst:     envInt("LLM_BURST", 0),
		CacheSize: envInt("LLM_CACHE_SIZE", 0),
	}

	switch provider {
	case ProviderGemini:
		cfg.APIKey = geminiKey
		cfg.Model = firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.5-flash")
	case ProviderOpenAI:
		cfg.APIKey = openaiKey
		cfg.Model = firstNonEmpty(strings.TrimSpace(os.Getenv("OPENAI_MODEL")), "gpt-4o-mini")
		cfg.BaseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	}
	return cfg
}

func envDurationMS(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
