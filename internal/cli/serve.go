package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/timescore-labs/timescore/internal/api"
)

var serveMetrics bool

func init() {
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", true, "expose Prometheus /metrics")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	srv := api.NewServer(a.tracker, a.wishes)
	if serveMetrics {
		srv.EnableMetrics()
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.API.Host, a.cfg.API.Port)
	fmt.Printf("TimeScore API listening on http://%s\n", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
