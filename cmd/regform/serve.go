package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/components/registration"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/internal/server"
	"github.com/goliatone/go-regform/internal/watcher"
	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	cmd.Flags().String("base-path", "", "path prefix for the form routes")
	cmd.Flags().String("templates", "", "directory with form.tmpl overriding the embedded template")
	cmd.Flags().Bool("watch", false, "reload templates when files in --templates change")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	var rendererOptions []vanilla.Option
	if dir := a.cfg.Templates.Dir; dir != "" {
		rendererOptions = append(rendererOptions, vanilla.WithTemplatesDir(dir))
	}
	html, err := vanilla.New(rendererOptions...)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	options := []server.Option{
		server.WithAddr(a.cfg.Server.Addr),
		server.WithBasePath(a.cfg.Server.BasePath),
		server.WithGrace(a.cfg.Server.Grace),
		server.WithLogger(logging.L),
		server.WithRegistration(
			registration.WithRenderer(html),
			registration.WithTheme(a.cfg.Theme.RendererConfig()),
			registration.WithOriginPatterns(a.cfg.Server.OriginPatterns...),
		),
	}
	if a.cfg.Server.Metrics {
		options = append(options, server.WithMetrics(metrics.NewPrometheus(nil)))
	}
	srv, err := server.New(options...)
	if err != nil {
		return err
	}

	if a.cfg.Templates.Watch {
		w, err := watcher.New(a.cfg.Templates.Dir, html, watcher.WithLogger(logging.L))
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logging.Errorf("template watcher stopped: %v", err)
			}
		}()
	}

	return srv.Run(ctx)
}
