package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MimePDF is the only content type accepted for resume uploads.
const MimePDF = "application/pdf"

var pdfMagic = []byte("%PDF-")

// ErrNotPDF is returned when the payload does not look like a PDF document.
var ErrNotPDF = errors.New("not a pdf document")

// IsPDF reports whether the payload starts with the PDF magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// Text extracts plain text from an in-memory PDF payload.
// The result is whitespace-trimmed; an empty string means the document
// carries no extractable text.
func Text(data []byte) (string, error) {
	if !IsPDF(data) {
		return "", ErrNotPDF
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
