package ocr

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/markdave123-py/Lectio/internal/core"
)

// NewDetector picks the OCR backend named by OCR_PROVIDER.
func NewDetector(name string, awsCfg aws.Config) (core.BlockDetector, error) {
	switch name {
	case "", "textract":
		return NewTextractDetector(awsCfg), nil
	case "local", "docconv":
		return NewDocconvDetector(false), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider: %s", name)
	}
}
