package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("Worked on the API\nLine 2\n"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Worked on the API\nLine 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainBOMAndCRLF(t *testing.T) {
	e := NewExtractor()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("caf\xc3\xa9\r\nsecond line")...)
	got, err := e.ExtractBytes(content, ".MD")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "café\nsecond line" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainInvalidUTF8(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("hello\x80world"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "hello�world" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_unsupported(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractBytes([]byte("slides"), ".pptx")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestExtractBytes_excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Task")
	f.SetCellValue("Sheet1", "B1", "Hours")
	f.SetCellValue("Sheet1", "A2", "Wrote tests")
	f.SetCellValue("Sheet1", "B2", "2")
	f.SetCellValue("Sheet1", "A4", "Code review")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := NewExtractor().ExtractBytes(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if want := "Task - Hours\nWrote tests - 2\nCode review"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractBytes_excelSheetHeadings(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Morning standup")
	if _, err := f.NewSheet("Afternoon"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	f.SetCellValue("Afternoon", "A1", "Pairing session")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := NewExtractor().ExtractBytes(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if want := "Sheet1:\nMorning standup\n\nAfternoon:\nPairing session"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtract_file(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2026-01-22.txt")
	if err := os.WriteFile(path, []byte("  Learned about channels.  "), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := NewExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Learned about channels." {
		t.Errorf("got %q", got)
	}
}

func TestExtract_nonexistent(t *testing.T) {
	if _, err := NewExtractor().Extract("/nonexistent/path/file.txt"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

// docxWith returns a .docx zip whose main part at docPath holds body, optionally
// declared in [Content_Types].xml with the given Override element.
func docxWith(docPath, override, body string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if override != "" {
		ct, _ := w.Create("[Content_Types].xml")
		_, _ = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` + override + `</Types>`))
	}
	fw, _ := w.Create(docPath)
	_, _ = fw.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func TestExtractBytes_docxParagraphs(t *testing.T) {
	body := `<w:p w:rsidR="00A1"><w:pPr><w:jc w:val="left"/></w:pPr><w:r><w:t>Imple</w:t></w:r><w:r><w:t xml:space="preserve">mented JWT </w:t></w:r><w:r><w:t>auth &amp; tests.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t></w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Felt</w:t><w:tab/><w:t>excited.</w:t></w:r></w:p>`
	got, err := NewExtractor().ExtractBytes(docxWith("word/document.xml", "", body), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if want := "Implemented JWT auth & tests.\nFelt\texcited."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractBytes_docxContentTypes(t *testing.T) {
	const mainType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	tests := []struct {
		name     string
		docPath  string
		override string
	}{
		{"part name first", "word/document2.xml", `<Override PartName="/word/document2.xml" ContentType="` + mainType + `"/>`},
		{"content type first", "word/document3.xml", `<Override ContentType="` + mainType + `" PartName="/word/document3.xml"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := docxWith(tt.docPath, tt.override, `<w:p><w:r><w:t>From `+tt.docPath+`</w:t></w:r></w:p>`)
			got, err := NewExtractor().ExtractBytes(content, ".docx")
			if err != nil {
				t.Fatalf("ExtractBytes: %v", err)
			}
			if got != "From "+tt.docPath {
				t.Errorf("got %q", got)
			}
		})
	}
}

func TestExtractBytes_docxErrors(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a zip"), ".docx"); err == nil {
		t.Error("expected error for non-zip docx")
	}
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	_, _ = w.Create("docProps/core.xml")
	_ = w.Close()
	if _, err := e.ExtractBytes(buf.Bytes(), ".docx"); err == nil {
		t.Error("expected error when document part is missing")
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.txt", "b.MD", "c.pdf", "d.docx", "e.odt", "f.rtf", "g.xlsx"} {
		if !Supported(p) {
			t.Errorf("Supported(%q) = false", p)
		}
	}
	for _, p := range []string{"a.pptx", "b", "c.go"} {
		if Supported(p) {
			t.Errorf("Supported(%q) = true", p)
		}
	}
}

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/journal/2026-01-22.md", "2026-01-22", true},
		{"2026-01-22-standup.docx", "2026-01-22", true},
		{"notes/2026-02-30.txt", "", false},
		{"notes.txt", "", false},
		{"22-01-2026.txt", "", false},
	}
	for _, tt := range tests {
		d, ok := DateFromFilename(tt.path)
		if ok != tt.ok || d.String() != tt.want {
			t.Errorf("DateFromFilename(%q) = %q, %v; want %q, %v", tt.path, d, ok, tt.want, tt.ok)
		}
	}
}
