// Package config loads application configuration from environment variables.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	// defaultCheckpointFile is where checkpoints land when PRPOLL_CHECKPOINT_FILE
	// is unset, matching the working-directory convention of CI scripts.
	defaultCheckpointFile = "status.yaml"
)

// Config holds configuration loaded from the environment. Command-line flags
// take precedence over these values.
type Config struct {
	// GitHubToken is the personal access token from GITHUB_TOKEN. Optional;
	// unauthenticated requests work against public repos at a lower rate limit.
	GitHubToken string
	// CheckpointFile is the checkpoint file path from PRPOLL_CHECKPOINT_FILE.
	CheckpointFile string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present, without overriding variables
// that are already set.
func Load() *Config {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	checkpointFile := defaultCheckpointFile
	if v, ok := os.LookupEnv("PRPOLL_CHECKPOINT_FILE"); ok && v != "" {
		checkpointFile = v
	}

	return &Config{
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		CheckpointFile: checkpointFile,
	}
}
