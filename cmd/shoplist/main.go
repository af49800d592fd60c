package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/shoplist/internal/cli"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
