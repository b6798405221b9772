package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/content"
	"github.com/tanimomor/portfolio/internal/store"
	"github.com/tanimomor/portfolio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		// stderr belongs to the terminal UI.
		if !verbose {
			logger = zap.NewNop()
		}
		catalog, err := content.Load()
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		st, err := store.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		// The form shows its own sending phase, so delivery is immediate.
		svc := contact.NewService(relays(cfg, st), contact.WithDelay(0), contact.WithLogger(logger))
		model, err := tui.New(tui.Options{
			Catalog: catalog,
			Send: func(sub contact.Submission) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				msg, err := svc.Deliver(ctx, sub)
				if err != nil {
					logger.Error("Error sending contact message", zap.Error(err))
					return err
				}
				logger.Debug("Contact message delivered", zap.String("id", msg.ID))
				return nil
			},
			SubmitDelay:    cfg.ContactDelay,
			ResetDelay:     cfg.ContactReset,
			CarouselPeriod: cfg.CarouselPeriod,
		})
		if err != nil {
			return err
		}
		defer model.Close()

		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}
