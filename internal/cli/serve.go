package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/contactdesk/internal/config"
	"github.com/example/contactdesk/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact desk HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = "127.0.0.1:8470"
				if cwd, err := os.Getwd(); err == nil {
					if cfg, err := config.LoadConfig(cwd); err == nil {
						addr = cfg.APIAddrOrDefault()
					}
				}
			}

			srv := wire.HTTPServer()
			fmt.Printf("Listening on http://%s\n", addr)
			return http.ListenAndServe(addr, srv.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
