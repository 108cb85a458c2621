package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractOpenText handles OpenDocument text and RTF, which cat detects by content.
func extractOpenText(content []byte) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract document: %w", err)
	}
	return text, nil
}
