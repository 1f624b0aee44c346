package main

import (
	"os"
	"time"

	"cinepass-auth/internals/config"
	"cinepass-auth/internals/initializers"
	"cinepass-auth/internals/routes"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	initializers.LoadEnvVariables()
	initializers.ConnectToDb()
	initializers.SyncDatabase()

	initializers.StartCodeCleanup(log)
}

func main() {
	r := routes.SetupRouter(initializers.DB, log)

	port := config.GetEnvAsStr("PORT", "5500")
	log.Infof("Server running at http://localhost:%s/", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
