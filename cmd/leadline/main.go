package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/samerh/leadline/internal/api"
	"github.com/samerh/leadline/internal/config"
	"github.com/samerh/leadline/internal/db"
	"github.com/samerh/leadline/internal/models"
	"github.com/samerh/leadline/internal/pipeline"
	"github.com/samerh/leadline/internal/quota"
	"github.com/samerh/leadline/internal/ui"
)

const (
	defaultDBPath = "leadline.db"
	historyWindow = 5
)

func main() {
	ui.ShowSplash()

	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	dbPath := flag.String("db", "", "Path to project database file (bypasses project selector)")
	limitFlag := flag.Int("limit", 0, "Daily contact limit (overrides environment)")
	thresholdFlag := flag.Int("threshold", 0, "Bot detection threshold (overrides environment)")
	radiusFlag := flag.Int("radius", 0, "Default search radius in meters (overrides environment)")
	flag.Parse()

	cfg := config.FromEnv()
	if *limitFlag > 0 {
		cfg.DailyLimit = *limitFlag
	}
	if *thresholdFlag > 0 {
		cfg.BotThreshold = *thresholdFlag
	}
	if *radiusFlag > 0 {
		cfg.RadiusMeters = *radiusFlag
	}
	if err := cfg.Validate(); err != nil {
		ui.PrintError(fmt.Sprintf("Invalid configuration: %v", err))
		os.Exit(1)
	}

	if !cfg.HasPlacesKey() {
		ui.PrintError("GOOGLE_MAPS_API_KEY not set. Please set it in .env file or environment.")
		os.Exit(1)
	}
	ui.PrintSuccess("Google Maps API key found")
	if cfg.HasScriptKey() {
		ui.PrintSuccess("OpenAI API key found")
	} else {
		ui.PrintWarn("OpenAI API key missing - scripts will use the offline template")
	}

	// Select project database
	selectedDBPath := *dbPath
	if selectedDBPath == "" {
		projects, err := db.ListProjectFiles(".")
		if err != nil {
			ui.PrintError(fmt.Sprintf("Failed to list projects: %v", err))
			os.Exit(1)
		}
		selectedDBPath, err = ui.PromptForProject(projects, defaultDBPath)
		if err != nil {
			return
		}
	}

	database, err := db.New(selectedDBPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to initialize database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	logger := newSessionLogger(selectedDBPath)

	// Session wiring: one user handle, one ledger, one gate
	userID := string(models.NewSessionID())
	ledger := quota.NewLedger()
	gate := quota.NewGate(ledger, cfg.DailyLimit, cfg.BotThreshold, logger)

	places := api.NewPlacesClientWithLogging(cfg.GoogleMapsAPIKey, selectedDBPath)
	prober := api.NewWebProber()
	enricher := pipeline.New(places, prober, cfg.ProbeTimeout, logger)
	enricher.OnProgress = ui.PrintProgress

	var scripts *api.ScriptClient
	if cfg.HasScriptKey() {
		scripts = api.NewScriptClient(cfg.OpenAIAPIKey, logger)
	}

	callerService, err := ui.PromptForService()
	if err != nil {
		return
	}

	for {
		showHistory(database)

		query, err := ui.PromptForSearch(cfg.RadiusMeters)
		if err != nil {
			return
		}

		fmt.Printf("Searching for %s near %s...\n", query.Category, query.Location)
		batch, searchErr := gate.Run(userID, query, enricher)
		fmt.Println()

		if searchErr != nil {
			reportSearchError(searchErr, cfg.DailyLimit)
			if !ui.ConfirmAnotherSearch() {
				return
			}
			continue
		}

		if batch.Size() == 0 {
			ui.PrintWarn("No businesses found. Try adjusting your search terms or increasing the radius.")
			if !ui.ConfirmAnotherSearch() {
				return
			}
			continue
		}

		if _, err := database.SaveBatch(userID, batch); err != nil {
			ui.PrintError(fmt.Sprintf("Failed to store search: %v", err))
		}

		_, remaining := ledger.Remaining(userID, cfg.DailyLimit)
		ui.PrintSuccess(fmt.Sprintf("Found %d businesses (%d contacts remaining today)", batch.Size(), remaining))

		if err := ui.RunResults(ui.ResultsConfig{
			Batch:          batch,
			Remaining:      remaining,
			GenerateScript: scriptGenerator(scripts, callerService, query.Category),
		}); err != nil {
			ui.PrintError(fmt.Sprintf("Interactive mode failed: %v", err))
		}

		if !ui.ConfirmAnotherSearch() {
			return
		}
	}
}

// scriptGenerator builds the per-business script closure for the results
// screen. Returns nil when the user skipped service selection.
func scriptGenerator(scripts *api.ScriptClient, callerService, searchCategory string) func(*models.Business) (string, error) {
	if callerService == "" {
		return nil
	}
	return func(b *models.Business) (string, error) {
		if scripts == nil {
			return api.FallbackScript(callerService, searchCategory, b.Name), nil
		}
		return scripts.Generate(callerService, searchCategory, b)
	}
}

// reportSearchError turns admission and pipeline failures into the
// user-facing messages with their recovery hints
func reportSearchError(err error, dailyLimit int) {
	switch {
	case errors.Is(err, quota.ErrQuotaExhausted):
		ui.PrintError(fmt.Sprintf("You have reached your daily limit of %d contacts. Please try again tomorrow.", dailyLimit))
	case errors.Is(err, quota.ErrAbuseFlagged):
		ui.PrintError("Suspicious activity detected. Please contact support if you believe this is an error.")
	case errors.Is(err, quota.ErrBatchOverflow):
		ui.PrintError(fmt.Sprintf("%v", err))
		ui.PrintWarn("Try a smaller search radius or a more specific business type.")
	case errors.Is(err, pipeline.ErrLocationNotFound):
		ui.PrintError("Could not find that location. Check the spelling or add a region (e.g., \"Springfield, IL\").")
	default:
		ui.PrintError(fmt.Sprintf("Search failed: %v", err))
	}
}

// showHistory prints the recent searches stored in this project
func showHistory(database *db.DB) {
	searches, err := database.RecentSearches(historyWindow)
	if err != nil || len(searches) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent searches:")
	for _, s := range searches {
		fmt.Printf("  %s - %s near %s (%d results)\n",
			s.SearchedAt.Format("2006-01-02 15:04"), s.Category, s.Location, s.ResultCount)
	}
	fmt.Println()
}

// newSessionLogger writes session events to leadline.log next to the
// project database
func newSessionLogger(dbPath string) *log.Logger {
	logFile := filepath.Join(filepath.Dir(dbPath), "leadline.log")
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "SESSION",
	})
}
