package ocr

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/models"
)

// textractAPI is the subset of *textract.Client the detector calls.
type textractAPI interface {
	DetectDocumentText(ctx context.Context, in *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

type TextractDetector struct {
	client textractAPI
}

func NewTextractDetector(awsCfg aws.Config) *TextractDetector {
	return &TextractDetector{client: textract.NewFromConfig(awsCfg)}
}

func (d *TextractDetector) Name() string { return "textract" }

// DetectBlocks runs a synchronous DetectDocumentText call on the raw bytes.
func (d *TextractDetector) DetectBlocks(ctx context.Context, data []byte) ([]models.Block, error) {
	out, err := d.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: data},
	})
	if err != nil {
		return nil, fmt.Errorf("textract detect document text: %w", err)
	}

	blocks := make([]models.Block, 0, len(out.Blocks))
	for _, b := range out.Blocks {
		blocks = append(blocks, models.Block{
			Type: models.BlockType(b.BlockType),
			Text: aws.ToString(b.Text),
		})
	}
	return blocks, nil
}

var _ core.BlockDetector = (*TextractDetector)(nil)
