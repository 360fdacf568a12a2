// Package main provides the quickstart CLI. It loads .env and TOML
// configuration, then serves the web application or inspects its URL map.
package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/web-quickstart/internal/config"
)

func main() {
	var (
		configPath string
		envFile    string
		cfg        *config.Config
	)

	rootCmd := &cobra.Command{
		Use:          "quickstart",
		Short:        "Web framework quickstart service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := loaded.Finalize(); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.BaseConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")

	getConfig := func() *config.Config { return cfg }

	rootCmd.AddCommand(
		serveCommand(getConfig),
		routesCommand(getConfig),
		urlsCommand(getConfig),
		hashPasswordCommand(getConfig),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
