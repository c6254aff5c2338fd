package update

import (
	"os"
	"strconv"
	"strings"

	"github.com/kahya/kahya/internal/llm"
)

type RuntimeConfig struct {
	DBPath               string
	NotesPath            string
	OllamaURL            string
	OllamaModel          string
	DesktopNotifications bool
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               "kahya.db",
		NotesPath:            "kahya_notes.txt",
		OllamaURL:            llm.DefaultBaseURL,
		OllamaModel:          llm.DefaultModel,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("KAHYA_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("KAHYA_NOTES_PATH")); v != "" {
		cfg.NotesPath = v
	}
	if v := strings.TrimSpace(os.Getenv("KAHYA_OLLAMA_URL")); v != "" {
		cfg.OllamaURL = v
	}
	if v := strings.TrimSpace(os.Getenv("KAHYA_OLLAMA_MODEL")); v != "" {
		cfg.OllamaModel = v
	}
	if v, ok := getEnvBool("KAHYA_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("KAHYA_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
