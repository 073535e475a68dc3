package services

import (
	"fmt"

	"github.com/alperakbas/emailscope/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	activitySheet = "Recent Activity"
	commitsSheet  = "Commit Identities"
)

// ExportService writes lookup results to an Excel workbook.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportToExcel writes the result as a three-sheet workbook: a summary of
// the single-valued emails, the event-feed scrape, and the commit
// identities.
func (s *ExportService) ExportToExcel(result *models.EmailResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	s.writeSummary(f, result)

	if _, err := f.NewSheet(activitySheet); err != nil {
		return fmt.Errorf("failed to create activity sheet: %w", err)
	}
	s.writeActivity(f, result)

	if _, err := f.NewSheet(commitsSheet); err != nil {
		return fmt.Errorf("failed to create commits sheet: %w", err)
	}
	s.writeCommits(f, result)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (s *ExportService) writeSummary(f *excelize.File, result *models.EmailResult) {
	f.SetCellValue(summarySheet, "A1", "Source")
	f.SetCellValue(summarySheet, "B1", "Email")
	f.SetCellValue(summarySheet, "A2", "GitHub profile")
	f.SetCellValue(summarySheet, "B2", orEmpty(result.GitHub))
	f.SetCellValue(summarySheet, "A3", "npm registry")
	f.SetCellValue(summarySheet, "B3", orEmpty(result.NPM))
	f.SetCellValue(summarySheet, "A4", "Username")
	f.SetCellValue(summarySheet, "B4", result.Username)
}

func (s *ExportService) writeActivity(f *excelize.File, result *models.EmailResult) {
	f.SetCellValue(activitySheet, "A1", "Email")
	for i, email := range result.RecentActivity {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetCellValue(activitySheet, cell, email)
	}
}

func (s *ExportService) writeCommits(f *excelize.File, result *models.EmailResult) {
	f.SetCellValue(commitsSheet, "A1", "Name")
	f.SetCellValue(commitsSheet, "B1", "Email")
	for i, entry := range result.RecentCommits {
		row := i + 2
		f.SetCellValue(commitsSheet, fmt.Sprintf("A%d", row), entry.Name)
		f.SetCellValue(commitsSheet, fmt.Sprintf("B%d", row), entry.Email)
	}
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
