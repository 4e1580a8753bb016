package main

import (
	"log/slog"

	"github.com/joho/godotenv"

	"forecast.app/cmd"
)

var Version = "development"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found or error loading it")
	}

	cmd.Execute(Version)
}
