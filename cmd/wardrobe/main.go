package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wardrobe/config"
	"wardrobe/db"
	"wardrobe/engine"
	"wardrobe/logger"
	"wardrobe/ui"
)

const version = "1.0.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("Wardrobe v%s\n", version)
			return
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, logFile, err := logger.OpenFile(cfg.Logger.File, cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store, err := db.NewByEngine(cfg.Storage.Engine, cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Storage.Engine, err)
	}

	wardrobe := engine.NewWardrobe(nil)
	start := loadWardrobe(store, wardrobe, cfg.Storage.Path, appLogger)

	composer := engine.NewComposer(wardrobe, engine.NewColorWheel(nil), appLogger)
	weather := engine.NewWeatherClient(engine.WeatherConfig{
		Endpoint:      cfg.Weather.Endpoint,
		APIKey:        cfg.Weather.APIKey,
		Timeout:       cfg.Weather.Timeout,
		RetryInterval: cfg.Weather.RetryInterval,
	}, appLogger)

	m, err := ui.NewModel(ui.Deps{
		Wardrobe: wardrobe,
		Composer: composer,
		Weather:  weather,
		City:     cfg.Weather.City,
		Logger:   appLogger,
		Warning:  start.warning,
	})
	if err != nil {
		log.Fatalf("Failed to create UI model: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	exitCode := 0
	if _, err := p.Run(); err != nil {
		appLogger.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		exitCode = 1
	}

	// Save even when the UI loop failed.
	saved, err := saveOnExit(store, wardrobe, start, cfg.Storage.Path, appLogger)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to save wardrobe to %s: %v\n", cfg.Storage.Path, err)
		exitCode = 1
	case saved:
		fmt.Printf("Wardrobe data saved to %s\n", cfg.Storage.Path)
	default:
		fmt.Fprintf(os.Stderr, "Not saving: %s could not be loaded and was left untouched.\n", cfg.Storage.Path)
		exitCode = 1
	}

	store.Close()
	logFile.Close()
	os.Exit(exitCode)
}

func printHelp() {
	fmt.Printf(`Wardrobe v%s - Outfit Planner CLI Tool

USAGE:
    wardrobe [flags]

FLAGS:
    -weather-endpoint URL       Weather API endpoint
    -weather-key KEY            Weather API key (empty disables the lookup)
    -city NAME                  City for the temperature lookup (default: rochester-hills)
    -weather-timeout DURATION   Per-request timeout (default: 5s)
    -weather-retry-interval D   Minimum wait before the retry (default: 1s)
    -store ENGINE               text or sqlite (default: text)
    -data PATH                  Data file (default: wardrobedata.txt or wardrobe.db)
    -log-level LEVEL            debug, info, warn or error (default: info)
    -log-format FORMAT          text or json (default: text)
    -log-file PATH              Log file (default: wardrobe.log)
    -env-file PATH              .env file to read (default: .env)
    --help, -h                  Show this help message
    --version, -v               Show version information

Every flag can also be set through a WARDROBE_* environment variable.

MENU:
    1   Add clothing item
    2   Remove clothing item
    3   Display wardrobe (/ to filter, esc to go back)
    4   Generate outfit
    5   Update worn time for clothing item
    q   Quit and save
`, version)
}
