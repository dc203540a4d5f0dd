package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/ipo_radar/app/console/internal/api"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
)

var (
	outputFormat string
	pdfFile      string
	timeout      time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze NAME",
	Short: "Analyze an IPO without the interactive view",
	Example: `  ipoctl analyze "Acme Corp"
  ipoctl analyze "Acme Corp" -o yaml --pdf acme.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "output format: json or yaml")
	analyzeCmd.Flags().StringVar(&pdfFile, "pdf", "", "also save the PDF report to this file")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "request timeout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("company name is empty")
	}
	if outputFormat != "json" && outputFormat != "yaml" {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client := newClient()
	res, err := client.Fetch(ctx, name)
	if err != nil {
		return err
	}
	if err := writeResult(cmd.OutOrStdout(), res, outputFormat); err != nil {
		return err
	}

	if pdfFile != "" {
		pdf, err := client.DownloadPDF(ctx, name)
		if err != nil {
			return fmt.Errorf("downloading report: %w", err)
		}
		if err := os.WriteFile(pdfFile, pdf, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Log.Infof("saved report for %q to %s", name, pdfFile)
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", pdfFile)
	}
	return nil
}

func writeResult(w io.Writer, res *api.Result, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(res)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
}
