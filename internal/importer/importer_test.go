package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"linguahouse/internal/domain"
	"linguahouse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sheetRows = [][]string{
	{"word", "readings", "definition", "translated definition", "translations", "type"},
	{"食べる", "たべる", "食べ物を口に入れる", "to put food in the mouth", "eat, consume", ""},
	{"走る", "はしる", "速く移動する", "to move fast", "run", "straight"},
	{"食べる", "", "生活する", "to live on", "live on", ""},
	{"", "", "", "", "", ""},
	{"こんにちは", "", "挨拶", "greeting", "hello", "reverse"},
}

func writeXLSX(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &values))
	}

	path := filepath.Join(t.TempDir(), "cards.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseRows(t *testing.T) {
	result := ParseRows(sheetRows, 2)

	assert.Equal(t, 4, result.RowsProcessed)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Cards, 3)

	eat := result.Cards[0]
	assert.Equal(t, "食べる", eat.Word.Name)
	assert.Equal(t, []string{"たべる"}, eat.Word.Readings)
	require.Len(t, eat.Meanings, 2)
	assert.Equal(t, []string{"eat", "consume"}, eat.Meanings[0].WordTranslations)
	assert.Equal(t, []string{"live on"}, eat.Meanings[1].WordTranslations)

	assert.Equal(t, "走る", result.Cards[1].Word.Name)
	assert.Equal(t, domain.CardTypeReverse, result.Cards[2].Type)
}

func TestParseRows_Errors(t *testing.T) {
	rows := [][]string{
		{"word", "", "definition", "translated", "a", "sideways"},
		{"word", "", "", "translated", "a"},
		{"", "", "definition", "translated", "a"},
		{"ok", "", "definition", "translated", "a"},
		{"ok", "", "other", "otro", "b", "reverse"},
		{"ok", "", "third", "tercero", " , "},
	}

	result := ParseRows(rows, 1)

	assert.Equal(t, 6, result.RowsProcessed)
	assert.Equal(t, 5, result.Skipped)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "Row 1")
	assert.Contains(t, result.Errors[3], "Row 5")
	assert.Contains(t, result.Errors[4], "Row 6")
	assert.Contains(t, result.Errors[4], "word_translations")
	require.Len(t, result.Cards, 1)
	assert.Len(t, result.Cards[0].Meanings, 1)
}

func TestReadCards_Excel(t *testing.T) {
	path := writeXLSX(t, sheetRows)

	result, err := ReadCards(DefaultConfig(path))
	require.NoError(t, err)

	require.Len(t, result.Cards, 3)
	assert.Len(t, result.Cards[0].Meanings, 2)
}

func TestReadCards_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	content := "word,readings,definition,translated definition,translations,type\n" +
		"perro,,animal doméstico,domestic animal,\"dog, hound\",\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := ReadCards(DefaultConfig(path))
	require.NoError(t, err)

	require.Len(t, result.Cards, 1)
	assert.Equal(t, []string{"dog", "hound"}, result.Cards[0].Meanings[0].WordTranslations)
}

func TestReadCards_MissingFile(t *testing.T) {
	_, err := ReadCards(DefaultConfig(filepath.Join(t.TempDir(), "missing.xlsx")))
	assert.Error(t, err)
}

func TestImporter_Import(t *testing.T) {
	path := writeXLSX(t, sheetRows)

	repo := new(testutil.MockCardRepository)
	repo.On("SaveCard", mock.Anything, int64(1), "ja", mock.MatchedBy(func(c domain.Card) bool {
		return c.Word.Name == "走る"
	})).Return(domain.NewValidationError("word", "rejected"))
	repo.On("SaveCard", mock.Anything, int64(1), "ja", mock.Anything).Return(nil)

	result, err := New(repo, testutil.NewTestLogger()).Import(context.Background(), 1, "ja", DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Errors, 1)
	repo.AssertNumberOfCalls(t, "SaveCard", 3)
}

func TestImporter_ImportStopsOnStorageError(t *testing.T) {
	path := writeXLSX(t, sheetRows)

	repo := new(testutil.MockCardRepository)
	repo.On("SaveCard", mock.Anything, int64(1), "ja", mock.Anything).Return(errors.New("disk full"))

	result, err := New(repo, testutil.NewTestLogger()).Import(context.Background(), 1, "ja", DefaultConfig(path))

	require.Error(t, err)
	assert.Equal(t, 0, result.Saved)
	repo.AssertNumberOfCalls(t, "SaveCard", 1)
}
