package main

import (
	"fmt"
	"os"

	"yatube/internal/config"
	"yatube/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	logger.Setup(cfg.LogLevel)

	rootCmd := &cobra.Command{
		Use:           "yatube",
		Short:         "Yatube blog server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(cfg),
		migrateCmd(cfg),
		groupCmd(cfg),
		userCmd(cfg),
		cacheCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
