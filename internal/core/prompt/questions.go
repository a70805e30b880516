package prompt

import (
	"regexp"
	"strings"
)

// QuestionBlock is one question as laid out by the questions template.
type QuestionBlock struct {
	Question  string
	Options   []string
	HasAnswer bool
}

var (
	questionMarker = regexp.MustCompile(`(?i)<b>\s*Question:?\s*</b>`)
	optionPattern  = regexp.MustCompile(`(?m)(?:^|<br>|\s)([a-d])\)\s*([^<\n]*)`)
)

// ParseQuestions splits model output into question blocks. It is lenient:
// text before the first question marker is dropped and malformed blocks are
// returned as they are so callers can check them.
func ParseQuestions(text string) []QuestionBlock {
	idx := questionMarker.FindAllStringIndex(text, -1)
	blocks := make([]QuestionBlock, 0, len(idx))

	for i, loc := range idx {
		end := len(text)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		body := text[loc[1]:end]

		q := QuestionBlock{HasAnswer: strings.Contains(body, "<details>") && strings.Contains(body, "</details>")}
		head := body
		if cut := strings.Index(head, "<details>"); cut >= 0 {
			head = head[:cut]
		}
		if first := strings.Index(head, "<br>"); first >= 0 {
			q.Question = strings.TrimSpace(head[:first])
		} else {
			q.Question = strings.TrimSpace(head)
		}
		for _, m := range optionPattern.FindAllStringSubmatch(head, -1) {
			q.Options = append(q.Options, m[1]+") "+strings.TrimSpace(m[2]))
		}
		blocks = append(blocks, q)
	}
	return blocks
}

// WellFormed reports whether blocks match what the questions template asks
// for: QuestionCount distinct questions, four options and one answer each.
func WellFormed(blocks []QuestionBlock) bool {
	if len(blocks) != QuestionCount {
		return false
	}
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if len(b.Options) != 4 || !b.HasAnswer || b.Question == "" || seen[b.Question] {
			return false
		}
		seen[b.Question] = true
	}
	return true
}
