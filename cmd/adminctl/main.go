package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Back office maintenance for donorhub",
	Long: `Operator tooling for the donorhub back office.

Available subcommands:
  report   - Render a report to a file or stdout
  set-role - Change the role of a profile
  token    - Mint a signed API token for local testing`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	rootCmd.AddCommand(reportCmd, setRoleCmd, tokenCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
