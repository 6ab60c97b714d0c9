// Command lbtop is an interactive terminal dashboard for a HAProxy-style
// load balancer's admin Unix socket.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lbtop/lbtop/internal/dataplane"
	"github.com/lbtop/lbtop/internal/lberr"
	"github.com/lbtop/lbtop/internal/logger"
	"github.com/lbtop/lbtop/internal/sockclient"
	"github.com/lbtop/lbtop/internal/ui"
	"github.com/lbtop/lbtop/internal/viewmodel"
)

var (
	sockPath       string
	updateInterval int
	startMode      int
	readOnly       bool
	statFilters    []string
	proxyFilters   []string
	logLevel       string
	logFile        string
)

func main() {
	root := &cobra.Command{
		Use:          "lbtop",
		Short:        "Interactive dashboard for a load balancer admin socket",
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().StringVarP(&sockPath, "unix-socket", "s", "", "path to the admin Unix socket (required)")
	root.Flags().IntVarP(&updateInterval, "update-interval", "i", 3, "refresh interval in seconds (1-30)")
	root.Flags().IntVarP(&startMode, "mode", "m", 1, "initial display mode (1-5)")
	root.Flags().BoolVarP(&readOnly, "read-only", "n", false, "disable admin commands (hotkeys and CLI writes)")
	root.Flags().StringArrayVarP(&statFilters, "filter", "f", nil, "stat filter \"iid type sid\" (repeatable)")
	root.Flags().StringArrayVarP(&proxyFilters, "proxy", "p", nil, "proxy name filter (repeatable)")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of discarding them")
	_ = root.MarkFlagRequired("unix-socket")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lbtop:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		fmt.Fprintln(os.Stderr, "lbtop:", err)
		os.Exit(lberr.ExitCode(err))
	}

	if err := logger.Init(logLevel, logFile); err != nil {
		return err
	}

	client := sockclient.New()
	if err := client.Connect(sockPath); err != nil {
		wrapped := lberr.Wrap(lberr.KindSocket, "connect to "+sockPath, err)
		fmt.Fprintln(os.Stderr, "lbtop:", wrapped)
		os.Exit(lberr.ExitCode(wrapped))
	}
	defer client.Close()

	plane := dataplane.New(client)
	if err := plane.RegisterStatFilter(statFilters); err != nil {
		fmt.Fprintln(os.Stderr, "lbtop:", err)
		os.Exit(lberr.ExitCode(err))
	}
	if err := plane.RegisterProxyFilter(proxyFilters); err != nil {
		fmt.Fprintln(os.Stderr, "lbtop:", err)
		os.Exit(lberr.ExitCode(err))
	}

	model := ui.NewModel(plane, ui.Config{
		UpdateInterval: time.Duration(updateInterval) * time.Second,
		InitialMode:    viewmodel.ModeID(startMode),
		ReadOnly:       readOnly,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return lberr.Wrap(lberr.KindProtocol, "program run", err)
	}

	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		fmt.Fprintln(os.Stderr, "lbtop:", m.Err())
		os.Exit(lberr.ExitCode(m.Err()))
	}
	return nil
}

// validateFlags enforces the startup constraints (SPEC_FULL.md §9 "CLI
// entrypoint & flags"): interval and mode ranges, the read-only/CLI-mode
// conflict, and a cap of 50 on the combined --filter/--proxy count.
func validateFlags() error {
	if sockPath == "" {
		return lberr.New(lberr.KindInit, "--unix-socket is required")
	}
	if updateInterval < 1 || updateInterval > 30 {
		return lberr.New(lberr.KindValue, "--update-interval must be between 1 and 30")
	}
	if startMode < 1 || startMode > 5 {
		return lberr.New(lberr.KindValue, "--mode must be between 1 and 5")
	}
	if readOnly && startMode == 5 {
		return lberr.New(lberr.KindValue, "--read-only cannot be combined with --mode 5 (CLI)")
	}
	if len(statFilters)+len(proxyFilters) > 50 {
		return lberr.New(lberr.KindValue, "combined --filter/--proxy count exceeds 50")
	}
	return nil
}
