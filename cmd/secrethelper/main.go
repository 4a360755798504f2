// Command secrethelper prepares repository secrets: it checks the local .env
// file for required variables and base64-encodes the Firebase service account
// key for storage as a CI secret.
package main

import (
	"flag"
	"fmt"
	"os"

	"sea-news-bot/internal/secrets"
)

func main() {
	envFile := flag.String("env", ".env", "path to the .env file to check")
	credDir := flag.String("dir", ".", "directory to search for the Firebase credentials file")
	flag.Parse()

	if err := run(*envFile, *credDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(envFile, credDir string) error {
	fmt.Println("=== CI Secrets Setup Helper ===")

	fmt.Printf("\n1. Checking %s...\n", envFile)
	missing, err := secrets.CheckEnvFile(envFile)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		fmt.Println("The following variables are missing:")
		for _, v := range missing {
			fmt.Printf("- %s\n", v)
		}
		return fmt.Errorf("%d variable(s) missing from %s", len(missing), envFile)
	}
	fmt.Println("All required variables present.")

	fmt.Println("\n2. Encoding Firebase credentials...")
	name, encoded, err := secrets.EncodeCredentialsFile(credDir)
	if err != nil {
		return err
	}
	fmt.Printf("Encoded %s.\n", name)

	fmt.Println("\n3. Add the following repository secrets:")
	fmt.Println("  OPENAI_API_KEY            your OpenAI API key")
	fmt.Println("  FIREBASE_CREDENTIALS_B64  the base64 value printed below")
	fmt.Println("  SMTP_SERVER               SMTP relay hostname")
	fmt.Println("  SMTP_PORT                 SMTP relay port")
	fmt.Println("  SMTP_USERNAME             SMTP username")
	fmt.Println("  SMTP_PASSWORD             SMTP password")
	fmt.Println("  EMAIL_FROM                sender address")
	fmt.Println("  EMAIL_RECIPIENTS          comma-separated recipient addresses")

	fmt.Println("\nBase64-encoded Firebase credentials:")
	fmt.Println(encoded)
	return nil
}
