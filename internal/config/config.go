package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Saksham932007/Attendance/internal/narrative"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port             string
	AllowedOrigins   []string
	LogLevel         string
	HTTPWriteTimeout time.Duration
	WSReadTimeout    time.Duration
	WSWriteTimeout   time.Duration
	PingPeriod       time.Duration
	PongWait         time.Duration
	WriteWait        time.Duration
	MaxMessageSize   int64

	// Narrative generation
	Narrative            narrative.Config
	NarrativeTimeout     time.Duration
	NarrativeConcurrency int

	// AnalysisSchedule is a cron spec for background runs; empty disables them
	AnalysisSchedule string

	// Sample data defaults
	SampleEmployees int
	SampleDays      int
}

const (
	minWriteTimeout   = 300 * time.Second
	writeTimeoutSlack = 30 * time.Second
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:             getEnv("PORT", "8001"),
		AllowedOrigins:   strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AnalysisSchedule: strings.TrimSpace(os.Getenv("ANALYSIS_SCHEDULE")),
	}

	var err error
	if config.WSReadTimeout, err = positiveSeconds("WS_READ_TIMEOUT", "60"); err != nil {
		return nil, err
	}
	if config.WSWriteTimeout, err = positiveSeconds("WS_WRITE_TIMEOUT", "10"); err != nil {
		return nil, err
	}

	// Calculate WebSocket constants
	config.PongWait = config.WSReadTimeout
	config.PingPeriod = (config.PongWait * 9) / 10 // Must be less than pongWait
	config.WriteWait = config.WSWriteTimeout
	config.MaxMessageSize = 512

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	if config.NarrativeTimeout, err = seconds("NARRATIVE_TIMEOUT", "30"); err != nil {
		return nil, err
	}
	if config.NarrativeConcurrency, err = positiveInt("NARRATIVE_CONCURRENCY", "4"); err != nil {
		return nil, err
	}
	ratePerSec, err := strconv.ParseFloat(getEnv("NARRATIVE_RATE_PER_SEC", "0"), 64)
	if err != nil || ratePerSec < 0 {
		return nil, fmt.Errorf("invalid NARRATIVE_RATE_PER_SEC: %q", os.Getenv("NARRATIVE_RATE_PER_SEC"))
	}

	config.Narrative = narrative.Config{
		Provider: narrativeProvider(),
		Gemini: narrative.GeminiOpts{
			BaseURL: getEnv("GEMINI_BASE_URL", narrative.DefaultGeminiBaseURL),
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		OpenAI: narrative.OpenAIOpts{
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		RatePerSec: ratePerSec,
		Burst:      config.NarrativeConcurrency,
	}

	if config.SampleEmployees, err = positiveInt("SAMPLE_EMPLOYEES", "100"); err != nil {
		return nil, err
	}
	if config.SampleDays, err = positiveInt("SAMPLE_DAYS", "30"); err != nil {
		return nil, err
	}

	defaultWrite := analysisBudget(config.SampleEmployees, config.NarrativeConcurrency, config.NarrativeTimeout)
	if config.HTTPWriteTimeout, err = seconds("HTTP_WRITE_TIMEOUT", strconv.Itoa(int(defaultWrite/time.Second))); err != nil {
		return nil, err
	}

	return config, nil
}

// analysisBudget is the write timeout a synchronous analysis of employees needs when
// every narrative call runs to its timeout, plus slack for loading and persisting.
// It never drops below minWriteTimeout.
func analysisBudget(employees, concurrency int, narrativeTimeout time.Duration) time.Duration {
	waves := (employees + concurrency - 1) / concurrency
	budget := time.Duration(waves)*narrativeTimeout + writeTimeoutSlack
	if budget < minWriteTimeout {
		return minWriteTimeout
	}
	return budget
}

// narrativeProvider picks NARRATIVE_PROVIDER, or the first provider with a key
func narrativeProvider() string {
	if p := strings.ToLower(strings.TrimSpace(os.Getenv("NARRATIVE_PROVIDER"))); p != "" {
		return p
	}
	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		return narrative.ProviderGemini
	case os.Getenv("OPENAI_API_KEY") != "":
		return narrative.ProviderOpenAI
	default:
		return narrative.ProviderNone
	}
}

func seconds(key, defaultValue string) (time.Duration, error) {
	n, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, os.Getenv(key))
	}
	return time.Duration(n) * time.Second, nil
}

// positiveSeconds rejects zero, which would disable keepalive timers
func positiveSeconds(key, defaultValue string) (time.Duration, error) {
	d, err := seconds(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func positiveInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, os.Getenv(key))
	}
	return n, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
