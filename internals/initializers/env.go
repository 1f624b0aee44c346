package initializers

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func LoadEnvVariables() {
	// Only load .env when it exists; in container environments the vars are
	// injected directly and there is no file.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			logrus.Fatal("Error loading .env file")
		}
	}
}
