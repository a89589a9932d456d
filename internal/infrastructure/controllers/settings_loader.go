package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// loadSettings reads the file named by --config or, failing that, the first
// file found in the default locations. Without any file the defaults apply.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Infof("No config file found (%v), using defaults", err)
		}
		cfgPath = found
	}
	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
	}

	return entities.NewSettings(cfgPath)
}
