package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"opennotebook/internal/utils"
)

const (
	defaultAppPort          = "8501"
	defaultLogLevel         = "INFO"
	defaultSurrealAddress   = "ws://surreal-db:8000"
	defaultSurrealPort      = "8000"
	defaultSurrealUser      = "root"
	defaultSurrealPass      = "root"
	defaultSurrealNamespace = "open_notebook"
	defaultSurrealDatabase  = "open_notebook"
	defaultOpenAIAPIBase    = "http://localhost:8000/v1"
	defaultOpenAIAPIKey     = "dummy-key"
	defaultModel            = "gpt-oss-20b"
)

// Settings holds the full application configuration. A loaded value is
// treated as immutable; construct a new one instead of mutating.
type Settings struct {
	AppPort  int
	LogLevel string

	SurrealAddress   string
	SurrealPort      int
	SurrealUser      string
	SurrealPass      string
	SurrealNamespace string
	SurrealDatabase  string

	OpenAIAPIBase string
	OpenAIAPIKey  string

	DefaultChatModel           string
	DefaultTransformationModel string
	DefaultEmbeddingModel      string
}

// Load reads settings from the environment. When envFile is non-empty its
// key=value contents are merged in without overriding variables already
// present in the live environment. When envFile is empty, a fixed list of
// candidate locations is probed and the first existing file is merged;
// finding none is not an error.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		// godotenv.Load never clobbers variables that are already set.
		_ = godotenv.Load(envFile)
	} else {
		for _, candidate := range envFileCandidates() {
			if _, err := os.Stat(candidate); err == nil {
				_ = godotenv.Load(candidate)
				break
			}
		}
	}

	appPort, err := intEnv("APP_PORT", defaultAppPort)
	if err != nil {
		return nil, err
	}
	surrealPort, err := intEnv("SURREAL_PORT", defaultSurrealPort)
	if err != nil {
		return nil, err
	}

	return &Settings{
		AppPort:  appPort,
		LogLevel: getEnvOrDefault("LOG_LEVEL", defaultLogLevel),

		SurrealAddress:   getEnvOrDefault("SURREAL_ADDRESS", defaultSurrealAddress),
		SurrealPort:      surrealPort,
		SurrealUser:      getEnvOrDefault("SURREAL_USER", defaultSurrealUser),
		SurrealPass:      getEnvOrDefault("SURREAL_PASS", defaultSurrealPass),
		SurrealNamespace: getEnvOrDefault("SURREAL_NAMESPACE", defaultSurrealNamespace),
		SurrealDatabase:  getEnvOrDefault("SURREAL_DATABASE", defaultSurrealDatabase),

		OpenAIAPIBase: getEnvOrDefault("OPENAI_API_BASE", defaultOpenAIAPIBase),
		OpenAIAPIKey:  getEnvOrDefault("OPENAI_API_KEY", defaultOpenAIAPIKey),

		DefaultChatModel:           getEnvOrDefault("DEFAULT_CHAT_MODEL", defaultModel),
		DefaultTransformationModel: getEnvOrDefault("DEFAULT_TRANSFORMATION_MODEL", defaultModel),
		DefaultEmbeddingModel:      getEnvOrDefault("DEFAULT_EMBEDDING_MODEL", defaultModel),
	}, nil
}

// Validate checks that the settings required to reach the inference
// endpoint and the database are present. It returns one message per
// missing value; an empty slice means the configuration is usable.
// Ports, credentials and log level are intentionally unchecked.
func (s *Settings) Validate() []string {
	var errs []string

	if s.OpenAIAPIBase == "" {
		errs = append(errs, "OPENAI_API_BASE is required")
	}
	if s.DefaultChatModel == "" {
		errs = append(errs, "DEFAULT_CHAT_MODEL is required")
	}
	if s.SurrealAddress == "" {
		errs = append(errs, "SURREAL_ADDRESS is required")
	}

	return errs
}

// OpenAIClientConfig returns the two fields an OpenAI-compatible client
// needs, keyed the way the client SDKs name them.
func (s *Settings) OpenAIClientConfig() map[string]string {
	return map[string]string{
		"base_url": s.OpenAIAPIBase,
		"api_key":  s.OpenAIAPIKey,
	}
}

// envFileCandidates lists the env file locations probed when no explicit
// path is given: the project's docker/.env, then docker/.env and .env
// relative to the working directory.
func envFileCandidates() []string {
	var candidates []string

	if root, err := utils.ProjectRoot(); err == nil {
		candidates = append(candidates, filepath.Join(root, "docker", ".env"))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates,
			filepath.Join(cwd, "docker", ".env"),
			filepath.Join(cwd, ".env"),
		)
	}

	return candidates
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func intEnv(key, defaultValue string) (int, error) {
	value := getEnvOrDefault(key, defaultValue)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, value, err)
	}
	return n, nil
}

// cached holds the process-wide settings instance. Access is not
// synchronized: loading is idempotent and ClearCache is only called from
// tests, so the race is benign.
var cached *Settings

// Get returns the memoized settings, loading them on first use. Prefer
// passing an explicit *Settings to constructors; Get exists for callers
// without an injection point.
func Get() (*Settings, error) {
	if cached == nil {
		s, err := Load("")
		if err != nil {
			return nil, err
		}
		cached = s
	}
	return cached, nil
}

// ClearCache drops the memoized instance so the next Get reloads. Test
// helper.
func ClearCache() {
	cached = nil
}
