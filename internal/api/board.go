package api

import (
	"sort"
	"strings"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// BuildBoard groups jobs into the kanban columns in display order. Every
// column is present, even when empty. Within a column jobs are ordered by
// priority, then most recent first. A non-empty query keeps only jobs whose
// company or title contains it, ignoring case.
func BuildBoard(jobs []*models.Job, query string) []models.BoardColumn {
	query = strings.ToLower(strings.TrimSpace(query))

	byStatus := make(map[models.JobStatus][]*models.Job, len(models.JobStatuses))
	for _, j := range jobs {
		if query != "" &&
			!strings.Contains(strings.ToLower(j.Company), query) &&
			!strings.Contains(strings.ToLower(j.Title), query) {
			continue
		}
		byStatus[j.Status] = append(byStatus[j.Status], j)
	}

	columns := make([]models.BoardColumn, 0, len(models.JobStatuses))
	for _, status := range models.JobStatuses {
		col := byStatus[status]
		if col == nil {
			col = []*models.Job{}
		}
		sort.SliceStable(col, func(a, b int) bool {
			if col[a].Priority != col[b].Priority {
				return col[a].Priority > col[b].Priority
			}
			return col[a].CreatedAt.After(col[b].CreatedAt)
		})
		columns = append(columns, models.BoardColumn{Status: status, Jobs: col})
	}
	return columns
}
