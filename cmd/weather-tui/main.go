package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/app"
	"github.com/fakhrymubarak/weather-dashboard/internal/tui"
)

// fileLogger keeps log output off the terminal the program draws on.
func fileLogger(path string) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func main() {
	logPath := flag.String("log", "weather-tui.log", "log file path")
	flag.Parse()

	logger, err := fileLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(context.Background(), app.Options{Logger: logger})
	if err != nil {
		logger.Errorw("Failed to start dashboard", "error", err)
		fmt.Fprintf(os.Stderr, "could not start: %v\n", err)
		os.Exit(1)
	}

	m := tui.NewModel(a.Dashboard)
	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()
	m.Close()
	if err := a.Close(); err != nil {
		logger.Errorw("Failed to close storage", "error", err)
	}
	if runErr != nil {
		logger.Errorw("Terminal program failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
