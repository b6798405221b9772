package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/tanimomor/portfolio/internal/config"
	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/content"
	"github.com/tanimomor/portfolio/internal/observability"
	"github.com/tanimomor/portfolio/internal/server"
	"github.com/tanimomor/portfolio/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	tp, shutdown, err := observability.Init(ctx, "portfolio", cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	svc := contact.NewService(relays(cfg, st),
		contact.WithDelay(cfg.ContactDelay),
		contact.WithLogger(logger),
		contact.WithTracer(otel.Tracer("portfolio/contact")),
	)

	deps := server.Deps{
		Config:  cfg,
		Catalog: catalog,
		Store:   st,
		Contact: svc,
		Logger:  logger,
	}
	if cfg.OTelEnabled {
		deps.TracerProvider = tp
	}
	srv, err := server.New(deps)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// relays always keeps messages in the inbox and mails them too when SMTP is
// configured.
func relays(cfg config.Config, st *store.Store) []contact.Relay {
	rs := []contact.Relay{contact.Inbox{Store: st}}
	if cfg.SMTP.Configured() {
		rs = append(rs, &contact.Mailer{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   cfg.ToEmail,
		})
	} else {
		logger.Warn("SMTP not configured, contact messages are only stored")
	}
	return rs
}
