// Command checkenv reports which deployment environment variables are set.
// Run it before deploying to catch missing secrets early.
package main

import (
	"fmt"
	"os"

	"mindhaven/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Environment check")
	fmt.Println()

	missing := 0
	fmt.Println("Required:")
	for _, name := range config.RequiredEnvVars {
		if os.Getenv(name) == "" {
			fmt.Printf("  ✗ %s is NOT set\n", name)
			missing++
		} else {
			fmt.Printf("  ✓ %s\n", name)
		}
	}

	fmt.Println("Optional:")
	for _, name := range config.OptionalEnvVars {
		if v := os.Getenv(name); v == "" {
			fmt.Printf("  - %s not set (using default)\n", name)
		} else {
			fmt.Printf("  ✓ %s\n", name)
		}
	}

	fmt.Println()
	if missing > 0 {
		fmt.Printf("%d required variable(s) missing\n", missing)
		os.Exit(1)
	}
	fmt.Println("All required variables are set")
}
