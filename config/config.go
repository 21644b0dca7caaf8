package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// token from the environment wins over the config file
const tokenEnvVar = "FOXEL_TOKEN"

type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

type ChatConfig struct {
	// run proposed tool calls without asking for confirmation
	AutoExecute bool `yaml:"auto_execute"`

	// virtual path sent as the conversation's directory context
	DefaultPath string `yaml:"default_path"`
}

// The configuration for foxelbot.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Chat   ChatConfig   `yaml:"chat"`
}

func BootstrapConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8088",
			Token:   "",
		},
		Chat: ChatConfig{
			AutoExecute: false,
			DefaultPath: "/",
		},
	}
}

func LoadConfig() (c Config, err error) {
	c = BootstrapConfig()
	configPath, err := GetWorkspaceConfigPath()
	if err != nil {
		err = fmt.Errorf("failed to get config path: %w", err)
		return
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}

	err = yaml.Unmarshal(content, &c)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal config file: %w", err)
		return
	}

	if env := os.Getenv(tokenEnvVar); env != "" {
		c.Server.Token = env
	}

	return
}
