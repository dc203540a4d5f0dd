// Package cmd contains the ipoctl commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iWorld-y/ipo_radar/app/console/internal/api"
	"github.com/iWorld-y/ipo_radar/app/console/internal/tui"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/logger"
)

const defaultServer = "http://localhost:8000"

var rootCmd = &cobra.Command{
	Use:   "ipoctl",
	Short: "IPO Radar console - market sentiment for upcoming IPOs",
	Long: `ipoctl talks to the IPO Radar sentiment service.

Running 'ipoctl' without arguments launches the interactive view: type a
company name, press enter to analyze it, and ctrl+s to open the PDF report.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("server", defaultServer, "sentiment service base URL")
	rootCmd.PersistentFlags().String("log-file", "", "log file (default is $HOME/.cache/ipoctl/ipoctl.log)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose logging")

	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads IPOCTL_* environment variables and sets up logging.
func initConfig() {
	viper.SetEnvPrefix("IPOCTL")
	viper.AutomaticEnv()

	level := "info"
	if viper.GetBool("verbose") {
		level = "debug"
	}
	file := viper.GetString("log_file")
	if file == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			file = filepath.Join(dir, "ipoctl", "ipoctl.log")
		}
	}
	if err := logger.Init(logger.Options{Level: level, File: file, Quiet: true}); err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing logger:", err)
	}
}

func newClient() *api.Client {
	return api.NewClient(viper.GetString("server"))
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := newClient()
	logger.Log.Infof("console started against %s", viper.GetString("server"))

	p := tea.NewProgram(
		tui.New(ctx, client, tui.NewBrowser(), client.ExportURL),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
