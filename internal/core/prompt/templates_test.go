package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_FillsInputText(t *testing.T) {
	input := "Photosynthesis converts light into chemical energy.\nIt happens in chloroplasts.\n"

	for _, tmpl := range []*Template{Summary, Questions} {
		t.Run(string(tmpl.Kind), func(t *testing.T) {
			out, err := tmpl.Render(input)
			require.NoError(t, err)

			assert.Contains(t, out, input)
			assert.NotContains(t, out, "{inputText}")
			assert.NotContains(t, out, "{{")
		})
	}
}

func TestRender_IsPure(t *testing.T) {
	a, err := Summary.Render("same")
	require.NoError(t, err)
	b, err := Summary.Render("same")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_TemplateSyntaxInInputIsLiteral(t *testing.T) {
	out, err := Summary.Render("{{.Secret}} and {inputText}")
	require.NoError(t, err)
	assert.Contains(t, out, "{{.Secret}} and {inputText}")
}

func TestQuestionsTemplate_Format(t *testing.T) {
	out, err := Questions.Render("text")
	require.NoError(t, err)

	assert.Contains(t, out, "exactly 5 multiple choice questions")
	assert.Contains(t, out, "a) answer1 <br> b) answer2 <br> c) answer3 <br> d) answer4")
	assert.Equal(t, 1, strings.Count(out, "<details>"))
	assert.Contains(t, out, "<summary><b>Answer</b></summary>")
}

func TestByKind(t *testing.T) {
	tmpl, ok := ByKind(KindQuestions)
	assert.True(t, ok)
	assert.Same(t, Questions, tmpl)

	_, ok = ByKind("flashcards")
	assert.False(t, ok)
}
