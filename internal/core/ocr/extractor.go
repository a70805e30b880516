package ocr

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/models"
)

// Extractor adapts a BlockDetector to the text the UI shows.
type Extractor struct {
	detector core.BlockDetector
}

func NewExtractor(d core.BlockDetector) *Extractor {
	return &Extractor{detector: d}
}

// ExtractText returns every LINE block's text in provider order, each
// followed by a newline. Provider failures come back as extraction errors,
// never as empty text.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	blocks, err := e.detector.DetectBlocks(ctx, data)
	if err != nil {
		return "", core.Wrap(core.StageExtraction, err)
	}

	text := JoinLines(blocks)
	log.Debug().
		Str("provider", e.detector.Name()).
		Int("blocks", len(blocks)).
		Int("chars", len(text)).
		Msg("text extracted")
	return text, nil
}

// JoinLines concatenates the LINE blocks; WORD, PAGE and unknown types are skipped.
func JoinLines(blocks []models.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b.Type != models.BlockLine {
			continue
		}
		sb.WriteString(b.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

var _ core.TextExtractor = (*Extractor)(nil)
