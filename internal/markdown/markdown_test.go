package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeadingLevels(t *testing.T) {
	blocks := Parse("# Title\n\n## Section\n\nbody text")

	require.Len(t, blocks, 3)
	assert.Equal(t, KindHeading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Title", blocks[0].Text())

	assert.Equal(t, KindHeading, blocks[1].Kind)
	assert.Equal(t, 2, blocks[1].Level)

	assert.Equal(t, KindParagraph, blocks[2].Kind)
	assert.Equal(t, "body text", blocks[2].Text())
}

func TestParseInlineStyles(t *testing.T) {
	blocks := Parse("plain *em* **strong** `code`")
	require.Len(t, blocks, 1)

	var em, strong, code bool
	for _, s := range blocks[0].Spans {
		switch s.Text {
		case "em":
			em = s.Style&StyleEmph != 0
		case "strong":
			strong = s.Style&StyleStrong != 0
		case "code":
			code = s.Style&StyleCode != 0
		}
	}
	assert.True(t, em)
	assert.True(t, strong)
	assert.True(t, code)
	assert.Equal(t, "plain em strong code", blocks[0].Text())
}

func TestParseList(t *testing.T) {
	blocks := Parse("- first\n- second\n  - nested\n")

	require.Len(t, blocks, 3)
	assert.Equal(t, KindListItem, blocks[0].Kind)
	assert.Equal(t, 0, blocks[0].Level)
	assert.Equal(t, "first", blocks[0].Text())

	assert.Equal(t, "second", blocks[1].Text())

	assert.Equal(t, KindListItem, blocks[2].Kind)
	assert.Equal(t, 1, blocks[2].Level)
	assert.Equal(t, "nested", blocks[2].Text())
}

func TestParseFencedCode(t *testing.T) {
	blocks := Parse("```go\nfmt.Println(\"hi\")\n```\n")

	require.Len(t, blocks, 1)
	assert.Equal(t, KindCodeBlock, blocks[0].Kind)
	assert.Equal(t, "go", blocks[0].Info)
	require.Len(t, blocks[0].Lines, 1)
	assert.Equal(t, `fmt.Println("hi")`, blocks[0].Lines[0])
}

func TestParseBlockquoteAndRule(t *testing.T) {
	blocks := Parse("> quoted words\n\n---\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, KindBlockquote, blocks[0].Kind)
	assert.Equal(t, "quoted words", blocks[0].Text())
	assert.Equal(t, KindRule, blocks[1].Kind)
}

func TestParseEmptySource(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestSoftBreakBecomesSpace(t *testing.T) {
	blocks := Parse("line one\nline two")
	require.Len(t, blocks, 1)
	assert.Equal(t, "line one line two", blocks[0].Text())
}

func TestLinkTextSurvives(t *testing.T) {
	blocks := Parse("see [the site](https://example.com) now")
	require.Len(t, blocks, 1)
	assert.Equal(t, "see the site now", blocks[0].Text())
}
