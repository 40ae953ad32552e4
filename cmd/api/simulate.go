package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/internal/service"
	"merchant-pulse/pkg/apperror"
	"merchant-pulse/pkg/logger"

	"github.com/spf13/cobra"
)

type simulateFlags struct {
	ticks      int
	interval   time.Duration
	timeRange  string
	merchantID string
	status     string
}

func newSimulateCmd(configPath *string) *cobra.Command {
	var f simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a live feed and print its messages as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, *configPath, f)
		},
	}
	cmd.Flags().IntVarP(&f.ticks, "ticks", "n", 10, "number of feed messages to print")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "tick interval (default feed.refresh_interval)")
	cmd.Flags().StringVar(&f.timeRange, "range", string(domain.DefaultTimeRange), "analytics window for matching transactions")
	cmd.Flags().StringVar(&f.merchantID, "merchant", "", "generate for one merchant only")
	cmd.Flags().StringVar(&f.status, "status", "", "only attach analytics for this status")
	return cmd
}

func runSimulate(cmd *cobra.Command, configPath string, f simulateFlags) error {
	if f.ticks < 1 {
		return errors.New("--ticks must be at least 1")
	}
	tr, ok := domain.ParseTimeRange(f.timeRange)
	if !ok {
		return fmt.Errorf("unknown range %q: must be day, week, month or year", f.timeRange)
	}

	a, err := newApp(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	feedSvc := service.NewFeedService(a.store, a.gen, nil, a.feedConfig(), logger.Component(a.log, "feed"))

	msgs := make(chan domain.FeedMessage, f.ticks)
	feed, err := feedSvc.Connect(cmd.Context(), ports.FeedOptions{
		OnMessage: func(msg domain.FeedMessage) {
			select {
			case msgs <- msg:
			default:
			}
		},
		Filters:         domain.TransactionFilter{Status: f.status},
		TimeRange:       tr,
		MerchantID:      f.merchantID,
		RefreshInterval: f.interval,
	})
	if apperror.HasCode(err, apperror.CodeUnknownMerchant) {
		return fmt.Errorf("%w (roster holds m1..m%d)", err, a.cfg.Ledger.Merchants)
	}
	if err != nil {
		return err
	}
	defer func() {
		feed.Close()
		<-feed.Done()
	}()

	enc := json.NewEncoder(cmd.OutOrStdout())
	for i := 0; i < f.ticks; i++ {
		var msg domain.FeedMessage
		select {
		case msg = <-msgs:
		case <-feed.Done():
			return errors.New("feed stopped before all ticks were printed")
		}
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
		if msg.Type == domain.FeedMessageError {
			return errors.New(msg.Error)
		}
	}
	return nil
}
