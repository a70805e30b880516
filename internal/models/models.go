package models

import (
	"time"
)

// Session is the per-user state that survives re-renders of the UI.
// RawText is overwritten by every successful upload; Questions holds the
// last completed questions panel.
type Session struct {
	ID        string    `json:"id"`
	RawText   string    `json:"raw_text"`
	Questions string    `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasText reports whether a document has been extracted in this session.
func (s *Session) HasText() bool {
	return s != nil && s.RawText != ""
}

// BlockType classifies a unit of detected text.
type BlockType string

const (
	BlockPage BlockType = "PAGE"
	BlockLine BlockType = "LINE"
	BlockWord BlockType = "WORD"
)

// Block is one detected text region, in the order the OCR provider returned it.
type Block struct {
	Type BlockType `json:"type"`
	Text string    `json:"text"`
}
