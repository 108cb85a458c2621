package extract

import (
	"path/filepath"

	"github.com/hyperjump/internai/internal/models"
)

// DateFromFilename returns the date a journal file is named after. The base name must
// start with YYYY-MM-DD ("2026-01-22.md", "2026-01-22-standup.docx").
func DateFromFilename(path string) (models.Date, bool) {
	base := filepath.Base(path)
	if len(base) < len(models.DateLayout) {
		return models.Date{}, false
	}
	d, err := models.ParseDate(base[:len(models.DateLayout)])
	if err != nil {
		return models.Date{}, false
	}
	return d, true
}
