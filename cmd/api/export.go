package main

import (
	"fmt"
	"io"
	"os"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/internal/service"
	"merchant-pulse/pkg/logger"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	kind       string
	format     string
	timeRange  string
	merchantID string
	status     string
	out        string
}

func newExportCmd(configPath *string) *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a transaction or merchant export of the simulated ledger",
		Example: `  merchant-pulse export --kind transactions --format csv --range week
  merchant-pulse export --kind merchants --format json --out merchants.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, *configPath, f)
		},
	}
	cmd.Flags().StringVar(&f.kind, "kind", "transactions", "what to export: transactions or merchants")
	cmd.Flags().StringVar(&f.format, "format", string(domain.ExportFormatCSV), "csv or json")
	cmd.Flags().StringVar(&f.timeRange, "range", string(domain.DefaultTimeRange), "day, week, month or year")
	cmd.Flags().StringVar(&f.merchantID, "merchant", "", "limit a transaction export to one merchant")
	cmd.Flags().StringVar(&f.status, "status", "", "only include transactions with this status")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func runExport(cmd *cobra.Command, configPath string, f exportFlags) error {
	tr, ok := domain.ParseTimeRange(f.timeRange)
	if !ok {
		return fmt.Errorf("unknown range %q: must be day, week, month or year", f.timeRange)
	}

	a, err := newApp(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	svc := service.NewExportService(a.store, nil, a.exportConfig(), logger.Component(a.log, "export"))

	format := domain.ExportFormat(f.format)
	var body []byte
	switch f.kind {
	case "transactions":
		body, err = svc.ExportTransactions(cmd.Context(), ports.TransactionExportRequest{
			TimeRange:  tr,
			Format:     format,
			Filter:     domain.TransactionFilter{Status: f.status},
			MerchantID: f.merchantID,
		})
	case "merchants":
		body, err = svc.ExportMerchants(cmd.Context(), ports.MerchantExportRequest{
			TimeRange: tr,
			Format:    format,
			Filter:    domain.MerchantFilter{Status: f.status},
		})
	default:
		return fmt.Errorf("unknown kind %q: must be transactions or merchants", f.kind)
	}
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", f.out, err)
		}
		defer file.Close()
		w = file
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
