// Command todo is the interactive task tracker. It opens the task
// database, starts the reminder engine, and runs the terminal REPL.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dianyike/Todo-Desktop/internal/config"
	"github.com/dianyike/Todo-Desktop/internal/reminder"
	"github.com/dianyike/Todo-Desktop/internal/repl"
	"github.com/dianyike/Todo-Desktop/internal/task"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	dbPath := flag.String("db", "", "Path to task database (overrides config)")
	theme := flag.String("theme", "", "UI theme: dark or light (overrides config)")
	interval := flag.Int("interval", 0, "Reminder poll interval in seconds (overrides config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
	}
	if *interval > 0 {
		cfg.Reminder.Interval = *interval
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	store, err := task.NewStore(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening task database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	engine := reminder.NewEngine(
		time.Duration(cfg.Reminder.Interval)*time.Second,
		cfg.Reminder.Granularity == config.GranularityPrecise,
	)
	engine.StartMonitoring()
	defer engine.StopMonitoring()

	replInstance, err := repl.NewREPL(store, engine, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nInterrupted.")
		engine.StopMonitoring()
		replInstance.Stop()
		store.Close()
		os.Exit(0)
	}()

	if err := replInstance.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
