package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ByRock010/CMPE321-Project4/pkg/database"
	"github.com/ByRock010/CMPE321-Project4/pkg/logging"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Configuration holds the command-line options for the archive shell.
type Configuration struct {
	DataDir    string
	InputFile  string
	LogPath    string
	OutputPath string
	DemoMode   bool
	Verbose    bool
}

func parseArguments() Configuration {
	var config Configuration

	flag.StringVar(&config.DataDir, "data", "./data", "Directory for type files and the catalog")
	flag.StringVar(&config.InputFile, "in", "", "Command script to run in batch mode (runs and exits)")
	flag.StringVar(&config.LogPath, "log", "", "Operation log path (default: <data>/log.csv)")
	flag.StringVar(&config.OutputPath, "out", "", "Search output path (default: <data>/output.txt)")
	flag.BoolVar(&config.DemoMode, "demo", false, "Seed sample types and records before the shell starts")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable debug-level diagnostics")

	flag.Parse()

	// A bare positional argument is treated as the input script, so
	// `archive commands.txt` works the same as `archive -in commands.txt`.
	if config.InputFile == "" && flag.NArg() > 0 {
		config.InputFile = flag.Arg(0)
	}

	return config
}

func initLogging(config Configuration) error {
	level := logging.LevelInfo
	if config.Verbose {
		level = logging.LevelDebug
	}

	// Diagnostics go to a file so they never bleed into the TUI or
	// batch output.
	return logging.Init(logging.Config{
		Level:      level,
		OutputPath: primitives.Filepath(config.DataDir).Join("archive.log").String(),
		Format:     "text",
	})
}

func showSplashScreen() {
	splash := `
██████╗ ██╗   ██╗███╗   ██╗███████╗
██╔══██╗██║   ██║████╗  ██║██╔════╝
██║  ██║██║   ██║██╔██╗ ██║█████╗
██║  ██║██║   ██║██║╚██╗██║██╔══╝
██████╔╝╚██████╔╝██║ ╚████║███████╗
╚═════╝  ╚═════╝ ╚═╝  ╚═══╝╚══════╝

 █████╗ ██████╗  ██████╗██╗  ██╗██╗██╗   ██╗███████╗
██╔══██╗██╔══██╗██╔════╝██║  ██║██║██║   ██║██╔════╝
███████║██████╔╝██║     ███████║██║██║   ██║█████╗
██╔══██║██╔══██╗██║     ██╔══██║██║╚██╗ ██╔╝██╔══╝
██║  ██║██║  ██║╚██████╗██║  ██║██║ ╚████╔╝ ███████╗
╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═══╝  ╚══════╝

The spice must flow. The records must keep.`

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D97706")).
		Bold(true).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#B45309")).
		Padding(0, 3).
		Align(lipgloss.Center)

	fmt.Println(style.Render(splash))
	time.Sleep(1 * time.Second)
}

func openSession(config Configuration) (*database.Database, error) {
	fmt.Printf("🏜  Opening archive at %s...\n", config.DataDir)

	db, err := database.Open(database.Config{
		DataDir:    primitives.Filepath(config.DataDir),
		LogPath:    primitives.Filepath(config.LogPath),
		OutputPath: primitives.Filepath(config.OutputPath),
	})
	if err != nil {
		return nil, err
	}

	fmt.Println("✅ Archive ready!")
	return db, nil
}

// runBatch executes every command in the script, then reports totals the
// way the grader expects: results land in output.txt, the command history
// in log.csv, and only a summary goes to stdout.
func runBatch(db *database.Database, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open input file %s: %w", filename, err)
	}
	defer file.Close()

	summary, err := db.RunScript(file)
	if err != nil {
		return err
	}

	fmt.Printf("%d command(s): %d succeeded, %d failed\n",
		summary.Total, summary.Succeeded, summary.Failed)
	fmt.Printf("Search results written to %s\n", db.OutputPath())
	fmt.Printf("Operation log written to %s\n", db.LogPath())
	return nil
}

// runDemoMode seeds a fresh archive with a few Dune-flavored types and
// records so the shell has something to search. Failures are reported but
// not fatal; rerunning against an existing archive will hit duplicates.
func runDemoMode(db *database.Database) error {
	fmt.Println("\n🎬 Seeding demo data...")
	fmt.Println("========================")

	demoCommands := []string{
		"create type planet 3 1 name str position int moons int",
		"create type person 3 1 name str age int homeworld str",
		"create record planet Arrakis 3 2",
		"create record planet Caladan 3 1",
		"create record planet Giedi_Prime 1 0",
		"create record person Paul 15 Caladan",
		"create record person Chani 16 Arrakis",
		"create record person Leto 45 Caladan",
		"create record person Jessica 36 Caladan",
	}

	seeded := 0
	for i, command := range demoCommands {
		progress := float64(i+1) / float64(len(demoCommands)) * 100
		fmt.Printf("[%3.0f%%] %s\n", progress, truncateString(command, 60))

		result := db.Execute(command)
		if result.Success {
			seeded++
		} else {
			fmt.Printf("       ⚠️  %s\n", result.Message)
		}

		time.Sleep(100 * time.Millisecond)
	}

	fmt.Printf("\n✅ Demo data ready (%d/%d commands succeeded)\n", seeded, len(demoCommands))
	fmt.Println("\nTry these in the shell:")
	fmt.Println("  search record person Chani")
	fmt.Println("  search record planet Arrakis")
	fmt.Println("  delete record person Leto")
	time.Sleep(1 * time.Second)

	return nil
}

func startInteractiveMode(db *database.Database) error {
	model := ui.NewModel(db)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	config := parseArguments()

	if err := initLogging(config); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	if config.InputFile != "" {
		db, err := openSession(config)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer db.Close()

		if err := runBatch(db, config.InputFile); err != nil {
			log.Fatalf("Batch run failed: %v", err)
		}
		return
	}

	showSplashScreen()

	db, err := openSession(config)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer db.Close()

	if config.DemoMode {
		if err := runDemoMode(db); err != nil {
			log.Fatalf("Demo mode failed: %v", err)
		}
	}

	if err := startInteractiveMode(db); err != nil {
		log.Fatalf("Failed to start shell: %v", err)
	}
}
