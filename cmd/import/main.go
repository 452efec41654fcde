package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"linguahouse/internal/config"
	"linguahouse/internal/domain"
	"linguahouse/internal/importer"
	"linguahouse/internal/service"
	"linguahouse/internal/storage"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "path to the .xlsx or .csv file")
	userID := flag.Int64("user", 0, "Telegram user id owning the profile")
	profile := flag.String("profile", "", "target language of the profile")
	sheet := flag.String("sheet", "", "sheet to import (first sheet by default)")
	startRow := flag.Int("start-row", 2, "first row to import, 1-based")
	dryRun := flag.Bool("dry-run", false, "parse the file without saving")
	flag.Parse()

	if *file == "" || *userID == 0 || *profile == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file cards.xlsx -user <telegram id> -profile <language>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := importer.Config{FilePath: *file, SheetName: *sheet, StartRow: *startRow}

	if *dryRun {
		result, err := importer.ReadCards(cfg)
		if err != nil {
			logger.Fatal("Failed to read file", zap.Error(err))
		}
		printResult(result)
		return
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	store, err := storage.Open(*dbCfg, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	language := service.NormalizeLanguage(*profile)

	if err := store.Users.EnsureUserExists(ctx, *userID); err != nil {
		logger.Fatal("Failed to ensure user exists", zap.Error(err))
	}

	profileService := service.NewProfileService(store.Profiles, logger)
	if _, err := profileService.CreateProfile(ctx, *userID, language); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		logger.Fatal("Failed to create profile", zap.Error(err))
	}

	cardService := service.NewCardService(store.Cards, logger)
	result, err := importer.New(cardService, logger).Import(ctx, *userID, language, cfg)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}
	printResult(result)
}

func printResult(result *importer.Result) {
	fmt.Printf("Rows processed: %d\n", result.RowsProcessed)
	fmt.Printf("Cards read:     %d\n", len(result.Cards))
	fmt.Printf("Cards saved:    %d\n", result.Saved)
	fmt.Printf("Skipped:        %d\n", result.Skipped)
	for _, e := range result.Errors {
		fmt.Println("  " + e)
	}
}
