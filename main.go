package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/cmd"
)

func main() {
	// Environment files are optional; a missing .env is not an error.
	_ = godotenv.Load()

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
