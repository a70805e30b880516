package ocr

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/models"
)

// DocconvDetector converts documents locally with docconv and reports one
// LINE block per non-empty line. Image OCR needs docconv's tesseract build;
// PDF, DOCX and HTML work with its default converters.
type DocconvDetector struct {
	useReadability bool
}

func NewDocconvDetector(useReadability bool) *DocconvDetector {
	return &DocconvDetector{useReadability: useReadability}
}

func (d *DocconvDetector) Name() string { return "docconv" }

func (d *DocconvDetector) DetectBlocks(ctx context.Context, data []byte) ([]models.Block, error) {
	contentType := http.DetectContentType(data)

	res, err := docconv.Convert(bytes.NewReader(data), contentType, d.useReadability)
	if err != nil {
		return nil, fmt.Errorf("docconv convert %s: %w", contentType, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blocks []models.Block
	for _, line := range strings.Split(res.Body, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		blocks = append(blocks, models.Block{Type: models.BlockLine, Text: line})
	}
	return blocks, nil
}

var _ core.BlockDetector = (*DocconvDetector)(nil)
