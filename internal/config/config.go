// Package config provides hierarchical configuration: defaults, an optional
// YAML config file, a .env file and environment variables, in ascending
// precedence.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists in the
// working directory or its parent. Missing files are not an error.
func LoadEnv(logger *logrus.Logger) {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.Warnf("Error loading %s: %v", envFile, err)
			return
		}
		logger.Infof("Loaded environment variables from %s", envFile)
	})
}
