package main

import (
	"encoding/json"
	"os"

	"github.com/DiscordGophers/dr-manual/manual"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/pkg/errors"
)

type configuration struct {
	Token string `json:"token"`
	// Manual is the path or URL of the legacy manual.
	Manual        string             `json:"manual"`
	Name          string             `json:"name"`
	Database      string             `json:"database"`
	LegacyFolders []string           `json:"legacy_folders"`
	RefreshHours  int                `json:"refresh_hours"`
	Permissions   commandPermissions `json:"permissions"`
}

type commandPermissions struct {
	Reload map[discord.RoleID]bool `json:"reload"`
}

func config(path string) (configuration, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(fileBytes)
}

func configFromBytes(data []byte) (configuration, error) {
	var cfg configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return configuration{}, errors.Wrap(err, "could not parse config")
	}

	if cfg.Name == "" {
		cfg.Name = "manual"
	}
	if cfg.Database == "" {
		cfg.Database = "manuals.db"
	}
	if len(cfg.LegacyFolders) == 0 {
		cfg.LegacyFolders = manual.DefaultLegacyFolders
	}
	if cfg.Permissions.Reload == nil {
		cfg.Permissions.Reload = map[discord.RoleID]bool{}
	}
	return cfg, nil
}
