package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	dslipak "github.com/dslipak/pdf"
	ledongthuc "github.com/ledongthuc/pdf"
)

// Primary backend: page-wise extraction. Some malformed PDFs make the parser
// hang on a single page, so every page call runs behind a timeout guard and a
// broken page is skipped rather than failing the document.
func (e *fileExtractor) extractPDFPrimary(path string) (string, error) {
	f, err := dslipak.Open(path)
	if err != nil {
		e.logger.Error("failed opening of pdf file", "path", path)
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := f.NumPage()
	e.logger.Debug("extractPDFPrimary", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			e.logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// Fallback backend: whole-document plain text via a second parser.
func (e *fileExtractor) extractPDFFallback(path string) (string, error) {
	f, r, err := ledongthuc.Open(path)
	if err != nil {
		return "", fmt.Errorf("fallback failed to open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("fallback failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("fallback failed to drain pdf text: %w", err)
	}
	return buf.String(), nil
}

func protectExtract(page dslipak.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}
