package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	Gemini      GeminiConfig
	Capture     CaptureConfig
	// MoodSet optionally overrides the built-in mood enumeration.
	MoodSet []string
}

type GeminiConfig struct {
	Model       string
	SpeechModel string
	SpeechVoice string
	// Offline switches to the deterministic fake client.
	Offline bool
}

type CaptureConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
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
		Port:        *port,
		Env:         env,
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Gemini: GeminiConfig{
			Model:       firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
			SpeechModel: firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_SPEECH_MODEL")), "gemini-2.5-flash-preview-tts"),
			SpeechVoice: firstNonEmpty(strings.TrimSpace(os.Getenv("SPEECH_VOICE")), "Algenib"),
			Offline:     parseBool(os.Getenv("LLM_OFFLINE"), false),
		},
		Capture: loadCaptureConfig(env),
		MoodSet: splitList(os.Getenv("MOOD_SET")),
	}, nil
}

func loadCaptureConfig(env string) CaptureConfig {
	endpoint := resolveCaptureEndpoint(env)
	return CaptureConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("CAPTURE_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("CAPTURE_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("CAPTURE_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("CAPTURE_S3_BUCKET")), "moodscribe-captures"),
		UseSSL:    resolveCaptureUseSSL(env),
	}
}

func resolveCaptureEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("CAPTURE_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("CAPTURE_S3_ENDPOINT"))
}

func resolveCaptureUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	return parseBool(os.Getenv("CAPTURE_S3_USE_SSL"), true)
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
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
