package services

import (
	"path/filepath"
	"testing"

	"github.com/alperakbas/emailscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportToExcel(t *testing.T) {
	githubEmail := "octo@example.com"
	result := models.NewEmailResult("octocat")
	result.GitHub = &githubEmail
	result.RecentActivity = []string{"push@example.com", "push@example.com"}
	result.RecentCommits = []models.CommitEntry{
		{Name: "Octo Cat", Email: "octo@example.com"},
		{Name: "Jane Doe", Email: "jane@example.com"},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, NewExportService().ExportToExcel(result, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	t.Run("Summary sheet", func(t *testing.T) {
		value, err := f.GetCellValue("Summary", "B2")
		require.NoError(t, err)
		assert.Equal(t, "octo@example.com", value)

		value, err = f.GetCellValue("Summary", "B3")
		require.NoError(t, err)
		assert.Empty(t, value, "absent npm email stays blank")
	})

	t.Run("Activity sheet keeps duplicates", func(t *testing.T) {
		first, err := f.GetCellValue("Recent Activity", "A2")
		require.NoError(t, err)
		second, err := f.GetCellValue("Recent Activity", "A3")
		require.NoError(t, err)
		assert.Equal(t, "push@example.com", first)
		assert.Equal(t, "push@example.com", second)
	})

	t.Run("Commit identities sheet", func(t *testing.T) {
		name, err := f.GetCellValue("Commit Identities", "A3")
		require.NoError(t, err)
		email, err := f.GetCellValue("Commit Identities", "B3")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", name)
		assert.Equal(t, "jane@example.com", email)
	})
}
