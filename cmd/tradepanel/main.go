package main

import (
	"context"
	"os"

	"tradepanel/config"
	"tradepanel/internal/console"
	"tradepanel/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// run interactive panel
	if err := console.New(cfg, os.Stdin, os.Stdout, log).Run(context.Background()); err != nil {
		log.Fatal("console failed", zap.Error(err))
	}
}
