package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/models"
)

type fakeTextract struct {
	out   *textract.DetectDocumentTextOutput
	err   error
	input []byte
}

func (f *fakeTextract) DetectDocumentText(ctx context.Context, in *textract.DetectDocumentTextInput, _ ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error) {
	f.input = in.Document.Bytes
	return f.out, f.err
}

func textractBlock(t types.BlockType, text string) types.Block {
	return types.Block{BlockType: t, Text: aws.String(text)}
}

func TestJoinLines(t *testing.T) {
	tests := []struct {
		name   string
		blocks []models.Block
		want   string
	}{
		{
			name: "lines in order, words skipped",
			blocks: []models.Block{
				{Type: models.BlockLine, Text: "Hello"},
				{Type: models.BlockWord, Text: "ignored"},
				{Type: models.BlockLine, Text: "World"},
			},
			want: "Hello\nWorld\n",
		},
		{name: "no blocks", blocks: nil, want: ""},
		{
			name:   "page and words only",
			blocks: []models.Block{{Type: models.BlockPage}, {Type: models.BlockWord, Text: "x"}},
			want:   "",
		},
		{
			name:   "empty line keeps its newline",
			blocks: []models.Block{{Type: models.BlockLine, Text: ""}, {Type: models.BlockLine, Text: "b"}},
			want:   "\nb\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinLines(tt.blocks))
		})
	}
}

func TestExtractor_Textract(t *testing.T) {
	fake := &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []types.Block{
			{BlockType: types.BlockTypePage},
			textractBlock(types.BlockTypeLine, "Hello"),
			textractBlock(types.BlockTypeWord, "ignored"),
			textractBlock(types.BlockTypeLine, "World"),
		},
	}}
	ex := NewExtractor(&TextractDetector{client: fake})

	text, err := ex.ExtractText(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld\n", text)
	assert.Equal(t, []byte("img"), fake.input)
}

func TestExtractor_TextractNoBlocks(t *testing.T) {
	ex := NewExtractor(&TextractDetector{client: &fakeTextract{out: &textract.DetectDocumentTextOutput{}}})

	text, err := ex.ExtractText(context.Background(), []byte("blank"))

	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractor_ProviderErrorIsExtractionError(t *testing.T) {
	cause := errors.New("UnsupportedDocumentException")
	ex := NewExtractor(&TextractDetector{client: &fakeTextract{err: cause}})

	text, err := ex.ExtractText(context.Background(), []byte("pdf?"))

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Equal(t, core.StageExtraction, core.StageOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestNewDetector(t *testing.T) {
	d, err := NewDetector("textract", aws.Config{Region: "us-east-1"})
	require.NoError(t, err)
	assert.Equal(t, "textract", d.Name())

	d, err = NewDetector("local", aws.Config{})
	require.NoError(t, err)
	assert.Equal(t, "docconv", d.Name())

	_, err = NewDetector("tesseract-cli", aws.Config{})
	assert.Error(t, err)
}
