package main

import (
	"hospitron/cmd/bootstrap"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.StringP("config", "c", ".env", "path to an optional env-style config file")
	pflag.Parse()

	// Initialize application with all dependencies
	app, err := bootstrap.New(*configFile)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
}
