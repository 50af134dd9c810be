// Package main is the command line front end for the career assistant API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "Career assistant command line client",
	Long:          "careerctl scans resumes, drafts cover letters, analyzes skill gaps and runs mock interviews against the career assistant API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	apiURL      string
	sessionFile string
	quiet       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("CAREERCTL_API_URL", "http://localhost:8080"), "Base URL of the career assistant API")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "Where the signed-in session is kept (default ~/.careerctl/session.json)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress status messages on stderr")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
