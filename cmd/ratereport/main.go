package main

import (
	"github.com/joho/godotenv"

	"rate-report/internal/cli"
)

func main() {
	// Allow a local .env to supply e.g. RATEREPORT_DATABASE_DSN.
	_ = godotenv.Load()

	cli.Execute()
}
