package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/vitals/internal/logging"
	"github.com/luki/vitals/internal/monitor"
	"github.com/luki/vitals/internal/poll"
	"github.com/luki/vitals/internal/probe"
	"github.com/luki/vitals/internal/repair"
	"github.com/luki/vitals/internal/runner"
)

func main() {
	repairEnabled := false
	var args []string
	for _, a := range os.Args[1:] {
		if a == "--repair" {
			repairEnabled = true
			continue
		}
		args = append(args, a)
	}

	cmd := "monitor"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "monitor":
		runMonitor(repairEnabled)
	case "once":
		runOnce(repairEnabled)
	case "stress":
		runStress(args[1:])
	case "help", "-h", "--help":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Usage: vitals [--repair] [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  monitor   Live CPU/GPU/RAM monitor TUI (default)")
	fmt.Println("  once      Print one snapshot and exit")
	fmt.Println("  stress    Generate load to watch readings move")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --repair  Allow installing missing GPU query tools via the")
	fmt.Println("            system package manager when no probe works")
}

// newCollector wires the probe stack: real command runner, repair policy
// per the --repair flag, diagnostics to the file logger.
func newCollector(repairEnabled bool, log *slog.Logger) *poll.Collector {
	run := runner.Exec{}
	var strategy repair.Strategy = repair.Disabled{}
	if repairEnabled {
		strategy = repair.PackageInstall{Run: run, Log: log}
	}
	return &poll.Collector{Resolver: probe.New(run, strategy, log)}
}

func runMonitor(repairEnabled bool) {
	log, logFile := logging.Init(slog.LevelDebug)
	if logFile != nil {
		defer logFile.Close()
	}

	m := monitor.New(newCollector(repairEnabled, log))
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if fm, ok := final.(monitor.Model); ok && fm.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", fm.Err())
		os.Exit(1)
	}
}

func runOnce(repairEnabled bool) {
	log, logFile := logging.Init(slog.LevelInfo)
	if logFile != nil {
		defer logFile.Close()
	}

	c := newCollector(repairEnabled, log)
	snap, err := c.Collect(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(snap.CPULine())
	fmt.Println(snap.GPULine())
	fmt.Println(snap.RAMLine())
}
