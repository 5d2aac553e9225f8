package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BackendGoogle = "google"
	BackendProse  = "prose"
	BackendOpenAI = "openai"
)

// Feed is a Bluesky feed generator refreshed on a schedule.
type Feed struct {
	Name string `validate:"required"`
	URI  string `validate:"required,startswith=at://"`
}

type Config struct {
	Port           string   `validate:"required,numeric"`
	GinMode        string   `validate:"oneof=debug release test"`
	AllowedOrigins []string `validate:"min=1"`

	Backend                   string `validate:"oneof=google prose openai"`
	NaturalLanguageCredential string `validate:"required_if=Backend google"`
	OpenAIKey                 string `validate:"required_if=Backend openai"`
	OpenAIModel               string

	MaxTextBytes   int           `validate:"gt=0"`
	AnalyzeTimeout time.Duration `validate:"gt=0"`

	Feeds        []Feed `validate:"dive"`
	FeedLimit    int    `validate:"gte=1,lte=100"`
	FeedSchedule string `validate:"required"`
	BlueskyHost  string `validate:"required,url"`
}

var validate = validator.New()

// Load reads the configuration from the environment. Call godotenv.Load first
// when a .env file should be honoured.
func Load() (Config, error) {
	cfg := Config{
		Port:                      getEnv("PORT", "8080"),
		GinMode:                   getEnv("GIN_MODE", "debug"),
		AllowedOrigins:            splitList(getEnv("CLIENT_URL", "*")),
		Backend:                   strings.ToLower(getEnv("NLP_BACKEND", BackendProse)),
		NaturalLanguageCredential: os.Getenv("NATURAL_LANGUAGE_CREDENTIALS"),
		OpenAIKey:                 os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:               getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		FeedSchedule:              getEnv("FEED_SCHEDULE", "*/10 * * * *"),
		BlueskyHost:               getEnv("BLUESKY_HOST", "https://public.api.bsky.app"),
	}

	var err error
	if cfg.MaxTextBytes, err = getInt("MAX_TEXT_BYTES", 1_000_000); err != nil {
		return Config{}, err
	}
	if cfg.FeedLimit, err = getInt("FEED_LIMIT", 25); err != nil {
		return Config{}, err
	}
	if cfg.AnalyzeTimeout, err = getDuration("ANALYZE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Feeds, err = ParseFeeds(os.Getenv("FEEDS")); err != nil {
		return Config{}, err
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseFeeds parses a comma separated list of name=at://uri pairs.
func ParseFeeds(raw string) ([]Feed, error) {
	var feeds []Feed
	seen := make(map[string]bool)
	for _, item := range splitList(raw) {
		name, uri, ok := strings.Cut(item, "=")
		name, uri = strings.TrimSpace(name), strings.TrimSpace(uri)
		if !ok || name == "" || uri == "" {
			return nil, fmt.Errorf("invalid feed %q, expected name=uri", item)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate feed name %q", name)
		}
		seen[name] = true
		feeds = append(feeds, Feed{Name: name, URI: uri})
	}
	return feeds, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
