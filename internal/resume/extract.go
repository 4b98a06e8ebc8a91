// Package resume extracts plain text from uploaded résumé files.
// PDF and DOCX are parsed with dedicated readers; TXT and Markdown are read
// as-is. All extractors return whitespace-normalized text.
package resume

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	xmlParagraph = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	multiBlank   = regexp.MustCompile(`\n\n\n+`)
)

// ExtractText reads a résumé file and returns its plain-text content.
// The extractor is chosen by file extension. Unknown extensions return an
// UnsupportedFormatError; parser failures return a CorruptFileError.
func ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".txt", ".md", ".text":
		text, err = readPlain(path)
	default:
		return "", &UnsupportedFormatError{Path: path, Format: ext}
	}
	if err != nil {
		return "", err
	}

	return NormalizeWhitespace(text), nil
}

func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &CorruptFileError{Path: path, Message: "failed to open pdf", Cause: err}
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", &CorruptFileError{Path: path, Message: "pdf contains no extractable text"}
	}
	return sb.String(), nil
}

func extractDOCX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &CorruptFileError{Path: path, Message: "failed to open docx", Cause: err}
	}
	defer doc.Close()

	// GetContent returns WordprocessingML; turn paragraph ends into newlines
	// before stripping the remaining markup.
	content := doc.Editable().GetContent()
	content = xmlParagraph.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, " ")

	return content, nil
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	return string(data), nil
}

// NormalizeWhitespace flattens CRLF line endings, collapses runs of spaces
// and excessive blank lines, and trims the result. Line structure survives so
// section headings ("Skills:") remain detectable downstream.
func NormalizeWhitespace(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = multiSpace.ReplaceAllString(line, " ")
		cleaned = append(cleaned, strings.TrimSpace(line))
	}

	result := strings.Join(cleaned, "\n")
	result = multiBlank.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}
