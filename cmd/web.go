package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/web"
)

var (
	webPort     int
	webAllowAll bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the Tressa web frontend",
	Long: `Starts the server-rendered web frontend: browse, create and view tresses in
a browser. All data comes from the configured Tressa server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := openClient()
		if err != nil {
			return err
		}

		cfg := web.Config{
			Port:        deps.cfg.Web.Port,
			AllowAll:    deps.cfg.Web.AllowAll || webAllowAll,
			Dark:        deps.cfg.Dark(),
			LineNumbers: deps.cfg.LineNumbers,
			PageSize:    deps.cfg.PageSize,
		}
		if webPort != 0 {
			cfg.Port = webPort
		}

		srv, err := web.New(cfg, deps.client)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		fmt.Printf("Tressa web frontend on http://localhost:%d (backend %s)\n",
			cfg.Port, deps.client.BaseURL())

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 0, "listen port (overrides config)")
	webCmd.Flags().BoolVar(&webAllowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(webCmd)
}
