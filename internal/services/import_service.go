package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alimgiray/pessoas/internal/models"
	"github.com/alimgiray/pessoas/internal/spreadsheet"
	"github.com/alimgiray/pessoas/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ExpectedColumns is the required header of an imported spreadsheet
var ExpectedColumns = []string{"nome", "e-mail", "data de nascimento", "ativo"}

type ImportService struct {
	store    PersonStore
	validate *validator.Validate
	now      func() time.Time
}

func NewImportService(store PersonStore) *ImportService {
	return &ImportService{
		store:    store,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ImportSummary counts what happened to the rows of one import
type ImportSummary struct {
	Processed int
	Active    int
	Skipped   int
}

// Import reads the active sheet of a workbook, applies the age rules to every
// row and upserts each one by email. Only active people are returned, in row
// order.
func (s *ImportService) Import(ctx context.Context, r io.Reader) ([]models.PersonResult, error) {
	sheet, err := spreadsheet.ReadActiveSheet(r)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}

	if !headerMatches(sheet.Header()) {
		return nil, ErrSchema
	}

	now := s.now()
	results := []models.PersonResult{}
	summary := ImportSummary{}

	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		rowNumber := i + 1

		if spreadsheet.IsBlankRow(row) {
			continue
		}

		person, ok := s.parseRow(rowNumber, row)
		if !ok {
			summary.Skipped++
			continue
		}

		person.ApplyRules(now)
		if err := s.store.Upsert(ctx, person); err != nil {
			return nil, fmt.Errorf("failed to save row %d: %w", rowNumber, err)
		}
		summary.Processed++

		if person.Active {
			summary.Active++
			results = append(results, person.ToResult())
		}
	}

	logger.WithFields(logrus.Fields{
		"sheet":     sheet.Name,
		"processed": summary.Processed,
		"active":    summary.Active,
		"skipped":   summary.Skipped,
	}).Info("Spreadsheet imported")

	return results, nil
}

// parseRow turns the four positional cells into a person. A false return means
// the row is skipped without failing the import.
func (s *ImportService) parseRow(rowNumber int, row []spreadsheet.CellValue) (*models.Person, bool) {
	for _, extra := range row[min(len(row), len(ExpectedColumns)):] {
		if !extra.IsEmpty() {
			logger.WithField("row", rowNumber).Warn("Skipping row with values beyond the expected columns")
			return nil, false
		}
	}

	cells := make([]spreadsheet.CellValue, len(ExpectedColumns))
	copy(cells, row)

	name := strings.TrimSpace(cells[0].String())
	email := strings.TrimSpace(cells[1].String())

	// The fourth column is read but ApplyRules decides activation.
	birthDate, ok := parseBirthDate(cells[2])
	if !ok {
		// Unparseable birth dates are dropped silently.
		logger.WithFields(logrus.Fields{
			"row":   rowNumber,
			"value": cells[2].String(),
			"kind":  cells[2].Kind().String(),
		}).Debug("Skipping row with invalid birth date")
		return nil, false
	}

	if name == "" {
		logger.WithField("row", rowNumber).Warn("Skipping row without name")
		return nil, false
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.WithFields(logrus.Fields{
			"row":   rowNumber,
			"email": email,
		}).Warn("Skipping row with invalid email")
		return nil, false
	}

	return models.NewPerson(name, email, birthDate), true
}

func parseBirthDate(cell spreadsheet.CellValue) (time.Time, bool) {
	switch cell.Kind() {
	case spreadsheet.CellDate:
		return cell.Date()
	case spreadsheet.CellText:
		text, _ := cell.Text()
		t, err := time.Parse(models.DateLayout, text)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

func headerMatches(header []string) bool {
	if len(header) != len(ExpectedColumns) {
		return false
	}
	for i, column := range header {
		if strings.ToLower(column) != ExpectedColumns[i] {
			return false
		}
	}
	return true
}
