package service

import (
	"os"

	"inkwell/app/config"

	log "github.com/sirupsen/logrus"
)

var osExit = os.Exit

// configPath is a variable so tests can point commands at a scratch config
var configPath = "inkwell.toml"

func loadConfig() *config.Config {
	conf, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	return conf
}
