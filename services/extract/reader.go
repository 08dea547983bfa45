package extract

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document holds the per-page text of one survey report PDF. Page access is
// bounds-guarded: recognizers ask for a page and get ("", false) when the
// document is shorter than the canonical layout expects.
type Document struct {
	pages []string
}

// sanitizePDF fixes common PDF issues like trailing garbage data
// Many PDFs downloaded from web have HTML or other data appended after %%EOF
// This function truncates the content at the last valid %%EOF marker
func sanitizePDF(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	// Check if content starts with PDF header
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content // Not a PDF, return as-is
	}

	// Find the last occurrence of %%EOF (valid PDF end marker)
	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)

	if lastEOF == -1 {
		// No %%EOF found - PDF is likely truncated, return as-is and let parser handle it
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)

	// Allow for trailing newlines after %%EOF (valid per PDF spec)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}

	// If there's significant extra content after %%EOF, truncate it
	if pdfEnd < len(content) {
		extraBytes := len(content) - pdfEnd
		if extraBytes > 10 { // More than just whitespace
			log.Printf("PDF Reader: Removing %d bytes of trailing garbage after %%EOF", extraBytes)
			return content[:pdfEnd]
		}
	}

	return content
}

// OpenDocument reads a survey report PDF from disk and extracts the text of
// every page. The file handle is released before returning on all paths.
func OpenDocument(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return NewDocument(content)
}

// NewDocument extracts per-page text from PDF bytes.
func NewDocument(content []byte) (*Document, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty PDF content")
	}

	// Try to sanitize PDF if it has trailing garbage (common with web downloads)
	content = sanitizePDF(content)

	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := pdfReader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			log.Printf("PDF Reader: Page %d is null, keeping empty placeholder", i)
			pages = append(pages, "")
			continue
		}

		pages = append(pages, extractPageText(page, i))
	}

	return &Document{pages: pages}, nil
}

// extractPageText prefers row extraction, which preserves the line structure
// the recognizers depend on, and falls back to plain text.
func extractPageText(page pdf.Page, pageNum int) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		log.Printf("PDF Reader: Row extraction failed for page %d, trying plain text: %v", pageNum, err)
		text, plainErr := page.GetPlainText(nil)
		if plainErr != nil {
			log.Printf("PDF Reader: Plain text extraction also failed for page %d: %v", pageNum, plainErr)
			return ""
		}
		return text
	}

	var textBuilder strings.Builder
	for _, row := range rows {
		var rowText strings.Builder
		for _, word := range row.Content {
			if rowText.Len() > 0 && !strings.HasSuffix(rowText.String(), " ") && !strings.HasPrefix(word.S, " ") {
				rowText.WriteString(" ")
			}
			rowText.WriteString(word.S)
		}
		line := strings.TrimSpace(rowText.String())
		if line != "" {
			textBuilder.WriteString(line)
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String()
}

// NewDocumentFromPages builds a Document straight from page texts. Used by
// tests and by callers that already hold extracted text.
func NewDocumentFromPages(pages []string) *Document {
	return &Document{pages: pages}
}

// NumPages returns the page count.
func (d *Document) NumPages() int { return len(d.pages) }

// Page returns the text of the 0-indexed page, or ("", false) when the
// document has no such page.
func (d *Document) Page(idx int) (string, bool) {
	if idx < 0 || idx >= len(d.pages) {
		return "", false
	}
	return d.pages[idx], true
}
