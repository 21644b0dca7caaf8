package chat

import (
	"errors"
	"fmt"
	"os"

	"github.com/DrizzleTime/foxelbot/api"
	"github.com/DrizzleTime/foxelbot/chat"
	"github.com/DrizzleTime/foxelbot/config"
)

func prepareConversation() (*chat.Conversation, error) {
	conf, err := config.LoadConfig()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no configuration found, run `foxelbot onboard` first")
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if serverOverride != "" {
		conf.Server.BaseURL = serverOverride
	}

	client, err := api.New(api.Config{
		BaseURL: conf.Server.BaseURL,
		Tokens:  api.StaticToken(conf.Server.Token),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	currentPath := conf.Chat.DefaultPath
	if pathOverride != "" {
		currentPath = pathOverride
	}

	return chat.NewConversation(client, chat.SessionConfig{
		AutoExecute: autoExecute || conf.Chat.AutoExecute,
		CurrentPath: currentPath,
	}), nil
}
