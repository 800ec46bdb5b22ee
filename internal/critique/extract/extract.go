package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

// ErrNoText means every backend ran but none recovered any text.
var ErrNoText = errors.New("no text recoverable from document")

type DocType string

const (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

type fileExtractor struct {
	logger *logger_i.Logger
}

func NewFileExtractor() TextExtractor {
	return &fileExtractor{logger: logger_i.NewLogger("Extractor")}
}

// ExtractText runs the primary PDF backend first and falls back to the
// secondary one when it yields nothing - the two parsers fail on different
// classes of PDFs. Non-PDF documents go through cat.
func (e *fileExtractor) ExtractText(path string) (string, error) {
	switch getDocType(path) {
	case PDF:
		text, err := e.extractPDFPrimary(path)
		if err != nil || strings.TrimSpace(text) == "" {
			e.logger.Debug("Primary PDF extraction yielded no text, trying fallback", "path", path, "error", err)
			text, err = e.extractPDFFallback(path)
			if err != nil {
				return "", fmt.Errorf("failed to extract pdf: %w", err)
			}
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrNoText
		}
		return text, nil

	case DOCX:
		text, err := cat.File(path)
		if err != nil {
			e.logger.Error("Error extracting content from doc", "error", err)
			return "", fmt.Errorf("failed to extract document: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrNoText
		}
		return text, nil

	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

func getDocType(docPath string) DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return PDF
	case ".docx", ".txt", ".rtf":
		return DOCX
	default:
		return ERR
	}
}
