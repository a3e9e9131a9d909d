package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can read and
write your Kameleon documents with your signed-in session.

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead, e.g. for the MCP Inspector.

Examples:
  # Stdio mode (default)
  kameleon mcp serve

  # HTTP mode
  kameleon mcp serve --http localhost:8080

Assistant configuration:
  {
    "mcpServers": {
      "kameleon": {
        "command": "/path/to/kameleon",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	ports := &mcp.Ports{
		Session:   sessionService,
		Documents: documentService,
		Personas:  personaService,
		Templates: templateService,
		Axioms:    axiomService,
		Profile:   profileService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Fprintf(cmd.OutOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
