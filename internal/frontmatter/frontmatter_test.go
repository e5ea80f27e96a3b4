package frontmatter

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	s, err := SplitString("---\ntitle: Hello World\n---\n# Hi\n", DefaultDelimiter)
	require.NoError(t, err)
	require.Empty(t, s.Leading)
	require.Equal(t, "title: Hello World\n", s.FrontMatter)
	require.Equal(t, "# Hi\n", s.Body)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	s, err := SplitString("---\r\nkey: value\r\n---\r\n# Title\r\n", DefaultDelimiter)
	require.NoError(t, err)
	require.Equal(t, "key: value\r\n", s.FrontMatter)
	require.Equal(t, "# Title\r\n", s.Body)
	require.Equal(t, "\r\n", s.Style.OpenNewline)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	s, err := SplitString("---\n---\nbody", DefaultDelimiter)
	require.NoError(t, err)
	require.Empty(t, s.FrontMatter)
	require.Equal(t, "body", s.Body)
}

func TestSplit_LeadingTextBeforeDelimiter(t *testing.T) {
	s, err := SplitString("<!-- note -->\n---\ntitle: x\n---\nbody\n", DefaultDelimiter)
	require.NoError(t, err)
	require.Equal(t, "<!-- note -->\n", s.Leading)
	require.Equal(t, "title: x\n", s.FrontMatter)
}

func TestSplit_OnlyFirstTwoDelimitersCount(t *testing.T) {
	s, err := SplitString("---\na: 1\n---\nbody\n---\nmore\n", DefaultDelimiter)
	require.NoError(t, err)
	require.Equal(t, "body\n---\nmore\n", s.Body)
}

func TestSplit_DelimiterMustBeWholeLine(t *testing.T) {
	_, err := SplitString("----\na: 1\n--- \nbody\n", DefaultDelimiter)
	require.Error(t, err)
}

func TestSplit_MissingDelimiters_ReturnsParseError(t *testing.T) {
	cases := []string{
		"# Title\n\nHello\n",
		"---\ntitle: only one\n# Title\n",
		"",
	}
	for _, input := range cases {
		_, err := SplitString(input, DefaultDelimiter)
		require.Error(t, err)
		require.True(t, stderrors.Is(err, ErrNoFrontMatter))
		require.True(t, errors.HasCategory(err, errors.CategoryParse))
	}
}

func TestSplit_CustomDelimiter(t *testing.T) {
	s, err := SplitString("+++\ntitle = 'x'\n+++\nbody", "+++")
	require.NoError(t, err)
	require.Equal(t, "title = 'x'\n", s.FrontMatter)
}

func TestJoin_RoundTrip_ReconstructsOriginalText(t *testing.T) {
	cases := []string{
		"---\nkey: value\n---\n# Title\n",
		"---\n---\n# Title\n",
		"---\r\nkey: value\r\n---\r\n# Title\r\n",
		"---\r\nkey: value\n---\nmixed\r\n",
		"lead\n---\ntitle: x\n---",
		"---\ntitle: x\n---\nbody\n---\ntrailing\n",
	}

	for _, input := range cases {
		s, err := SplitString(input, DefaultDelimiter)
		require.NoError(t, err)
		require.Equal(t, input, Join(s, DefaultDelimiter))
	}
}

type postFields struct {
	Title string `yaml:"title"`
	Tags  string `yaml:"tags"`
}

func TestDecode_TypedRecord(t *testing.T) {
	var fm postFields
	require.NoError(t, Decode("title: Hello World\ntags: go rust\n", &fm))
	require.Equal(t, "Hello World", fm.Title)
	require.Equal(t, "go rust", fm.Tags)
}

func TestDecode_Empty_LeavesZeroValue(t *testing.T) {
	var fm postFields
	require.NoError(t, Decode("  \n", &fm))
	require.Empty(t, fm.Title)
}

func TestDecode_Malformed_ReturnsFrontMatterError(t *testing.T) {
	var fm postFields
	err := Decode("title: [unclosed\n", &fm)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFrontMatter))
}

func TestMissingField(t *testing.T) {
	err := MissingField("title")
	require.True(t, errors.HasCategory(err, errors.CategoryFrontMatter))
	field, _ := err.Context().GetString("field")
	require.Equal(t, "title", field)
}
