package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Gemini     GeminiConfig
	Storage    StorageConfig
	Evaluation EvaluationConfig
	Rubric     RubricConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type EvaluationConfig struct {
	LLMWeight        float64
	KeywordWeight    float64
	MatchThreshold   float64
	MinKeywordLength int
	JudgeConcurrency int
	JudgeTimeout     time.Duration
	RetryMaxAttempts int
	MaxChunkSize     int
}

type RubricConfig struct {
	Path string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Evaluation: EvaluationConfig{
			LLMWeight:        getEnvAsFloat("LLM_WEIGHT", 0.7),
			KeywordWeight:    getEnvAsFloat("KEYWORD_WEIGHT", 0.3),
			MatchThreshold:   getEnvAsFloat("MATCH_THRESHOLD", 0.3),
			MinKeywordLength: getEnvAsInt("MIN_KEYWORD_LENGTH", 4),
			JudgeConcurrency: getEnvAsInt("JUDGE_CONCURRENCY", 3),
			JudgeTimeout:     getEnvAsDuration("JUDGE_TIMEOUT", "60s"),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			MaxChunkSize:     getEnvAsInt("MAX_CHUNK_SIZE", 8000),
		},
		Rubric: RubricConfig{
			Path: getEnv("RUBRIC_PATH", "./evaluation_rubric.txt"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
