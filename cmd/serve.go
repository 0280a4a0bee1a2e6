/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/vieng/internal/session"
	"github.com/valpere/vieng/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation web page",
	Long: `Serve the Home, Translate and Analyze views and the JSON API:

  GET  /?view=home|translate|analyze
  POST /api/translate   body: {"text":"..."}
  GET  /api/analyze
  GET  /api/tags
  GET  /healthz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		adapter, closer, err := newAdapter(cfg, logger)
		if err != nil {
			return err
		}
		defer closer.Close()

		sessions := session.NewMemoryStore(cfg.Server.SessionTTL, logger)
		sessions.Start(ctx, 0)

		srv, err := web.NewServer(adapter, newAnnotator(cfg, logger), sessions,
			web.Config{CORSOrigins: cfg.CORS.Origins}, logger)
		if err != nil {
			return err
		}

		httpSrv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", cfg.Server.Addr, "backend", adapter.Backend())
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.String("addr", defaultAddr, "Listen address")
	f.Duration("session-ttl", session.DefaultTTL, "Idle time before a session is dropped")
	f.StringSlice("cors-origins", nil, "Allowed CORS origins for the JSON API")
	translatorFlags(serveCmd)
	parserFlags(serveCmd)
}
