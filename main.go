package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/koopa0/studybot/cmd"
)

func main() {
	// Load .env if present; a missing file is not an error.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
