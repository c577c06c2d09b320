package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/api"
	"github.com/eduval/eduval/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the instrument editor as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		wb := d.workbench(ctx)
		srv := &http.Server{
			Addr:              d.cfg.Addr,
			Handler:           api.New(wb, d.cat, d.log).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			d.log.Info("HTTP API listening", zap.String("addr", d.cfg.Addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve: %w", err)
		case <-ctx.Done():
		}

		d.log.Info("shutting down HTTP API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the instrument editor as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		wb := d.workbench(cmd.Context())
		d.log.Info("MCP server on stdio")
		return server.Serve(server.New(wb, d.cat, version))
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
}
