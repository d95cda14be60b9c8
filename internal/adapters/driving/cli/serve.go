package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/switchboard-labs/switchboard/internal/adapters/driving/httpapi"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the REST API server exposing the call lifecycle, conversation,
and knowledge-base endpoints.

The server seeds the knowledge base on first start (configurable) and shuts
down gracefully on SIGINT/SIGTERM, draining in-flight requests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	addr := ":8000"
	if engineCfg != nil {
		addr = engineCfg.Addr()
	}
	if servePort > 0 {
		host := ""
		if engineCfg != nil {
			host = engineCfg.Server.Host
		}
		addr = fmt.Sprintf("%s:%d", host, servePort)
	}

	server := httpapi.NewServer(callService, knowledgeService, embeddingService, llmService)

	logger.Info("Switchboard listening on %s", addr)
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}
