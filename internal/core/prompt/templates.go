// Package prompt holds the two fixed prompt templates. Each takes a single
// variable, the extracted document text.
package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// Kind names a template and the UI panel it feeds.
type Kind string

const (
	KindSummary   Kind = "summary"
	KindQuestions Kind = "questions"
)

// QuestionCount is how many multiple-choice questions the questions template asks for.
const QuestionCount = 5

const summaryText = `Summarize the below text:
"{{.InputText}}"
`

const questionsText = `Create exactly 5 multiple choice questions from the input text.
Every question has four options labelled a) to d) and exactly one correct answer.
Use the below output format for every question and nothing else:

<br>
<b>Question:</b> Question1 <br>
a) answer1 <br> b) answer2 <br> c) answer3 <br> d) answer4 <br>
<details>
<summary><b>Answer</b></summary>
Answer to the question
</details>

<inputText>
{{.InputText}}
</inputText>
`

type Template struct {
	Kind Kind
	tmpl *template.Template
}

var (
	Summary   = mustParse(KindSummary, summaryText)
	Questions = mustParse(KindQuestions, questionsText)
)

func mustParse(kind Kind, text string) *Template {
	return &Template{Kind: kind, tmpl: template.Must(template.New(string(kind)).Option("missingkey=error").Parse(text))}
}

// Render fills the template with inputText.
func (t *Template) Render(inputText string) (string, error) {
	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, struct{ InputText string }{InputText: inputText}); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Kind, err)
	}
	return sb.String(), nil
}

// ByKind looks a template up by panel name.
func ByKind(kind Kind) (*Template, bool) {
	switch kind {
	case KindSummary:
		return Summary, true
	case KindQuestions:
		return Questions, true
	default:
		return nil, false
	}
}
