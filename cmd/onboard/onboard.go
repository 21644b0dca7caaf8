package onboard

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DrizzleTime/foxelbot/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var OnboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize foxelbot configuration.",
	Long:  "Initialize foxelbot configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runOnboard(args)
		if err != nil {
			return fmt.Errorf("failed to run onboard: %w", err)
		}

		return nil
	},
}

func bootstrapConfig(configPath string) error {
	// check file exists, ask user if they want to overwrite
	doInit := true
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		// ask user if they want to overwrite
		fmt.Printf("Config file already exists at %s, do you want to overwrite it? (y/n): ", configPath)
		var overwrite string
		fmt.Scanln(&overwrite)
		if overwrite != "y" && overwrite != "Y" {
			doInit = false
		}
	}

	if !doInit {
		return nil
	}

	cfg := config.BootstrapConfig()
	output, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configPath, output, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", configPath)
	fmt.Println("Set server.base_url and server.token (or the FOXEL_TOKEN environment variable) before chatting.")

	return nil
}

func runOnboard(_ []string) error {
	configPath, err := config.GetWorkspaceConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	workspaceDir := filepath.Dir(configPath)
	if _, err := os.Stat(workspaceDir); os.IsNotExist(err) {
		err = os.MkdirAll(workspaceDir, 0755)
		if err != nil {
			return fmt.Errorf("failed to create config directory at %s: %w", workspaceDir, err)
		}
	}

	if err := bootstrapConfig(configPath); err != nil {
		return fmt.Errorf("failed to bootstrap config: %w", err)
	}

	return nil
}
