package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"directory-backend/internal/domains/directory/model"
)

const exportSheetName = "Directory"

// buildRosterExcelFile writes one row per entry, in roster order.
func buildRosterExcelFile(entries []model.DirectoryEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename default sheet
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	// Row 1: Header
	headers := []string{
		"ID",
		"Username",
		"Uploads",
		"Likes",
		"Followers",
		"Avatar",
		"Source ID",
		"Implicit",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(exportSheetName, "A1", lastCol, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, e := range entries {
		rowNum := i + 2
		values := []interface{}{
			e.OrdinalID,
			e.Username,
			e.UploadCount,
			e.LikeTotal,
			e.FollowerCount,
			e.AvatarRef,
			e.SourceID,
			e.Implicit,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
	}

	return f, nil
}
