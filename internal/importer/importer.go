// Package importer loads cards in bulk from spreadsheet files.
//
// Every row holds one meaning:
//
//	A word | B readings | C definition | D translated definition | E translations | F card type
//
// Readings and translations are comma separated; the card type defaults to straight.
// Rows sharing a word are merged into one card with several meanings.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"linguahouse/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	colWord = iota
	colReadings
	colDefinition
	colTranslatedDefinition
	colTranslations
	colCardType
)

// Config defines the import configuration
type Config struct {
	FilePath  string // Path to the .xlsx or .csv file
	SheetName string // Sheet to import; the first sheet when empty
	StartRow  int    // The row to start importing from (1-based index)
}

// DefaultConfig returns a config skipping the header row of the first sheet
func DefaultConfig(path string) Config {
	return Config{
		FilePath: path,
		StartRow: 2,
	}
}

// Result holds the result of an import operation
type Result struct {
	RowsProcessed int
	Saved         int
	Skipped       int
	Errors        []string
	Cards         []domain.Card
}

// CardSaver stores imported cards
type CardSaver interface {
	SaveCard(ctx context.Context, userID int64, profile string, card domain.Card) error
}

// Importer reads spreadsheet rows into a profile
type Importer struct {
	saver  CardSaver
	logger *zap.Logger
}

// New creates a new importer
func New(saver CardSaver, logger *zap.Logger) *Importer {
	return &Importer{saver: saver, logger: logger}
}

// Import reads the file and saves its cards. A card that fails to save is
// reported in the result and does not stop the import.
func (i *Importer) Import(ctx context.Context, userID int64, profile string, cfg Config) (*Result, error) {
	result, err := ReadCards(cfg)
	if err != nil {
		return nil, err
	}

	for _, card := range result.Cards {
		if err := i.saver.SaveCard(ctx, userID, profile, card); err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return result, fmt.Errorf("save card %q: %w", card.Word.Name, err)
			}
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Card %s: %v", card.Word.Name, err))
			continue
		}
		result.Saved++
	}

	i.logger.Info("Cards imported",
		zap.Int64("user_id", userID),
		zap.String("profile", profile),
		zap.String("file", cfg.FilePath),
		zap.Int("rows", result.RowsProcessed),
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// ReadCards reads cards from an Excel or CSV file without saving them
func ReadCards(cfg Config) (*Result, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readExcel(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}
	return ParseRows(rows, cfg.StartRow), nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// ParseRows turns spreadsheet rows into cards in the order their words first appear.
// Rows before startRow (1-based) and blank rows are ignored.
func ParseRows(rows [][]string, startRow int) *Result {
	if startRow < 1 {
		startRow = 1
	}

	result := &Result{}
	index := make(map[string]int)

	for i, row := range rows {
		if i < startRow-1 || isBlank(row) {
			continue
		}
		result.RowsProcessed++

		if err := addRow(result, index, row); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result
}

func addRow(result *Result, index map[string]int, row []string) error {
	word, err := domain.NewWord(cell(row, colWord), splitList(cell(row, colReadings)))
	if err != nil {
		return err
	}

	cardType := domain.CardTypeStraight
	if raw := cell(row, colCardType); raw != "" {
		if cardType, err = domain.ParseCardType(raw); err != nil {
			return err
		}
	}

	meaning, err := domain.NewMeaning(
		cell(row, colDefinition),
		cell(row, colTranslatedDefinition),
		splitList(cell(row, colTranslations)),
	)
	if err != nil {
		return err
	}

	if at, ok := index[word.Name]; ok {
		card := &result.Cards[at]
		if card.Type != cardType {
			return domain.NewValidationError("card_type", fmt.Sprintf("%s conflicts with %s used earlier for %q", cardType, card.Type, word.Name))
		}
		if len(card.Word.Readings) == 0 {
			card.Word.Readings = word.Readings
		}
		card.Meanings = append(card.Meanings, meaning)
		return nil
	}

	card, err := domain.NewCard(cardType, word, []domain.Meaning{meaning})
	if err != nil {
		return err
	}
	index[word.Name] = len(result.Cards)
	result.Cards = append(result.Cards, *card)
	return nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
