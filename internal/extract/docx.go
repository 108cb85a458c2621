package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

const (
	docxDefaultBody = "word/document.xml"
	contentTypes    = "[Content_Types].xml"
	docxMainType    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
)

var (
	// Paragraphs may carry attributes (<w:p w:rsidR="...">), so match any tag start.
	docxParagraph = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	docxRun       = regexp.MustCompile(`<w:t(?: [^>]*)?>([^<]*)</w:t>|<w:tab/>|<w:br/>`)
	docxOverride  = regexp.MustCompile(`<Override[^>]*/?>`)
	docxPartName  = regexp.MustCompile(`PartName="/?([^"]+)"`)
)

// extractDOCX returns one line per non-empty paragraph. Runs inside a paragraph are
// concatenated as-is since Word splits words across runs.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	body := docxDefaultBody
	if types, err := readZipFile(zr, contentTypes); err == nil {
		if p := mainPart(string(types)); p != "" {
			body = p
		}
	}
	xml, err := readZipFile(zr, body)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}

	var lines []string
	for _, para := range docxParagraph.FindAllString(string(xml), -1) {
		var b strings.Builder
		for _, m := range docxRun.FindAllStringSubmatch(para, -1) {
			switch m[0] {
			case "<w:tab/>":
				b.WriteByte('\t')
			case "<w:br/>":
				b.WriteByte('\n')
			default:
				b.WriteString(html.UnescapeString(m[1]))
			}
		}
		if line := strings.TrimSpace(b.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// mainPart finds the main document part declared in [Content_Types].xml.
func mainPart(types string) string {
	for _, o := range docxOverride.FindAllString(types, -1) {
		if !strings.Contains(o, `ContentType="`+docxMainType+`"`) {
			continue
		}
		if m := docxPartName.FindStringSubmatch(o); m != nil {
			return m[1]
		}
	}
	return ""
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s not found", name)
}
