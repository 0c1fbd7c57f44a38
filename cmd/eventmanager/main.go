package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "eventmanager <command>",
	Short:        "Event, attendee and speaker management service",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}

// @title Event Manager API
// @version 1.0
// @description Events with capacity-checked attendee registration, plus a speaker roster.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Organizer token, "Bearer <jwt>". Only enforced when AUTH_JWT_SECRET is set.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
