package service

import (
	"context"
	"fmt"

	"library-backend/internal/domains/book/model"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Catalog"

var exportHeaders = []string{
	"ID",
	"Title",
	"Authors",
	"Genres",
	"Description",
	"Total Quantity",
	"Current Quantity",
	"Available",
	"Cover URL",
	"Created At",
}

// ExportCatalog writes the whole catalog to a single-sheet workbook.
func (s *BookService) ExportCatalog(ctx context.Context) (*excelize.File, error) {
	books, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildCatalogWorkbook(books)
	if err != nil {
		return nil, fmt.Errorf("build catalog workbook: %w", err)
	}
	return f, nil
}

func buildCatalogWorkbook(books []model.BookResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle)
	}

	for i, b := range books {
		row := i + 2
		values := []interface{}{
			b.ID.String(),
			b.Title,
			b.AllAuthors,
			b.AllGenres,
			deref(b.Description),
			b.TotalQuantity,
			b.CurrentQuantity,
			b.IsAvailable,
			deref(b.ImageAddress),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
