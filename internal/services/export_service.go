package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/pessoas/internal/models"
	"github.com/alimgiray/pessoas/internal/spreadsheet"
	"github.com/alimgiray/pessoas/pkg/logger"
)

const (
	ExportFilename  = "pessoas_ativas.xlsx"
	ExportSheetName = "Pessoas Ativas"
)

// ExportColumns is the header row of the exported spreadsheet
var ExportColumns = []string{"nome", "e-mail", "data de nascimento", "ativo", "valor"}

// ExportFile is a serialized workbook ready to be sent as a download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	store PersonStore
}

func NewExportService(store PersonStore) *ExportService {
	return &ExportService{
		store: store,
	}
}

// ExportActive writes every active person to a new workbook
func (s *ExportService) ExportActive(ctx context.Context) (*ExportFile, error) {
	people, err := s.store.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active people: %w", err)
	}

	wb, err := spreadsheet.NewWorkbook(ExportSheetName, ExportColumns)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	for _, p := range people {
		if err := wb.AppendRow(
			p.Name,
			p.Email,
			p.BirthDate.Format(models.DateLayout),
			true,
			models.FormatFee(p.Fee),
		); err != nil {
			return nil, err
		}
	}

	data, err := wb.Bytes()
	if err != nil {
		return nil, err
	}

	logger.WithField("rows", len(people)).Info("Active people exported")

	return &ExportFile{
		Filename:    ExportFilename,
		ContentType: spreadsheet.ContentType,
		Data:        data,
	}, nil
}
