package cli

import (
	"github.com/spf13/cobra"

	"marketbrief/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the marketbrief HTTP API.

Endpoints:
  GET  /healthz
  GET  /api/v1/retrieve?q=...&symbols=...&k=...
  POST /api/v1/brief {"query": "...", "symbols": "..."}`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	addr := app.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := api.NewServer(app.uc, log)
	return server.Start(addr)
}
