package core

import (
	"context"

	"github.com/markdave123-py/Lectio/internal/models"
)

// BlockDetector is the OCR provider boundary: raw document bytes in, the
// provider's ordered set of typed text blocks out.
type BlockDetector interface {
	DetectBlocks(ctx context.Context, data []byte) ([]models.Block, error)
	Name() string
}

// TextExtractor turns a document into the plain text shown in the Text panel.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
