package main

import (
	"os"

	"baby-tracker-go/internal/app"
	"baby-tracker-go/internal/mcpserver"
	"baby-tracker-go/pkg/logger"
	"github.com/spf13/cobra"
)

var mcpUserID string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assistant tools over MCP on stdio",
	Long: `Serves the tool catalog, resources and prompts on stdin/stdout for local MCP
clients. Every call acts as one user: --user or MCP_USER_ID.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewFromEnvWriter(os.Stderr)

		application, err := app.New(log)
		if err != nil {
			log.Critical("app: init failed", "err", err)
			return err
		}
		defer application.Close()

		userID := mcpUserID
		if userID == "" {
			userID = application.Config().MCP.UserID
		}
		log.Info("mcp: serving stdio", "user_id", userID)
		return mcpserver.ServeStdio(application.MCPServer(), userID)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpUserID, "user", "",
		"Acting user id (defaults to MCP_USER_ID)")
}
