package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	workspaceDirName = ".foxelbot"
	configFileName   = "config.yaml"
)

func GetWorkspaceConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, workspaceDirName, configFileName), nil
}
