package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packmule-labs/packmule-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the ingestion tools over the Model Context Protocol.

Without flags the server speaks JSON-RPC over stdio, the transport MCP
clients such as Claude Desktop launch directly. Register it there as:

  { "mcpServers": { "packmule": {
      "command": "/path/to/packmule", "args": ["mcp", "serve"] } } }

With --port the server listens on HTTP instead, which suits the MCP
Inspector and remote clients:

  packmule mcp serve --port 8080`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		server, err := mcp.NewServer(&mcp.Ports{
			Ingestion: ingestionService,
			Workspace: workspaceService,
			Runs:      runService,
			Settings:  settingsService,
		})
		if err != nil {
			return err
		}

		if mcpPort > 0 {
			addr := fmt.Sprintf(":%d", mcpPort)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(cmd.Context(), addr)
		}
		return server.Run(cmd.Context())
	},
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
