package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docview/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC. It exposes tools to
list, add, update and delete documents, and the configured collections
as resources.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "docview": {
        "command": "/path/to/docview",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	viewer, err := requireViewer()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Viewer: viewer})
	if err != nil {
		return err
	}

	return server.Run(cmd.Context())
}
