package main

import (
	"baby-tracker-go/internal/mcpserver"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "baby-tracker",
	Short: "Baby tracking service",
	Long: `baby-tracker records sleep, feedings, diapers, pumping, medicine, growth,
temperature and activities for a household's children.

Examples:
  baby-tracker serve                         # Run the HTTP API
  baby-tracker migrate                       # Apply database migrations and exit
  baby-tracker mcp                           # Serve the MCP tools on stdio as MCP_USER_ID
  baby-tracker chat --child <id> "how did she sleep?"`,
	Version:       mcpserver.Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}
