// Package frontmatter splits delimiter-bounded front matter from document bodies
// and decodes it into typed records.
package frontmatter

import (
	"bytes"
	stderrors "errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// DefaultDelimiter is the conventional front matter delimiter line.
const DefaultDelimiter = "---"

// ErrNoFrontMatter indicates fewer than two delimiter lines were found.
var ErrNoFrontMatter = stderrors.New("no front matter")

// Style captures the line terminators of both delimiter lines so Join can
// reproduce the original bytes.
type Style struct {
	OpenNewline  string
	CloseNewline string
}

// Split is the textual result of splitting a document.
type Split struct {
	// Leading is any text before the opening delimiter line.
	Leading     string
	FrontMatter string
	Body        string
	Style       Style
}

type line struct {
	start, end int // end includes the terminator
	newline    string
}

// SplitString locates the first two lines equal to delimiter. The text between
// them is the front matter and everything after the second is the body.
//
// Lines are compared without their "\n" or "\r\n" terminator. No semantic
// interpretation of the front matter happens here.
func SplitString(text, delimiter string) (Split, error) {
	var found []line
	for pos := 0; pos < len(text) && len(found) < 2; {
		l := nextLine(text, pos)
		content := text[l.start : l.end-len(l.newline)]
		if content == delimiter {
			found = append(found, l)
		}
		pos = l.end
	}

	if len(found) < 2 {
		return Split{}, errors.ParseError("no front matter").
			WithCause(ErrNoFrontMatter).
			WithContext("delimiter", delimiter).
			Build()
	}

	open, closing := found[0], found[1]
	return Split{
		Leading:     text[:open.start],
		FrontMatter: text[open.end:closing.start],
		Body:        text[closing.end:],
		Style: Style{
			OpenNewline:  open.newline,
			CloseNewline: closing.newline,
		},
	}, nil
}

// SplitBytes is SplitString for raw file contents.
func SplitBytes(content []byte, delimiter string) (Split, error) {
	return SplitString(string(content), delimiter)
}

func nextLine(text string, pos int) line {
	idx := strings.IndexByte(text[pos:], '\n')
	if idx < 0 {
		return line{start: pos, end: len(text)}
	}
	end := pos + idx + 1
	if idx > 0 && text[pos+idx-1] == '\r' {
		return line{start: pos, end: end, newline: "\r\n"}
	}
	return line{start: pos, end: end, newline: "\n"}
}

// Join reassembles a document from a Split.
//
// For any text that SplitString accepts, Join(SplitString(text)) == text.
func Join(s Split, delimiter string) string {
	var b strings.Builder
	b.Grow(len(s.Leading) + len(s.FrontMatter) + len(s.Body) + 2*len(delimiter) + 4)
	b.WriteString(s.Leading)
	b.WriteString(delimiter)
	b.WriteString(s.Style.OpenNewline)
	b.WriteString(s.FrontMatter)
	b.WriteString(delimiter)
	b.WriteString(s.Style.CloseNewline)
	b.WriteString(s.Body)
	return b.String()
}

// Decode deserializes a YAML front matter block into out.
//
// An empty block leaves out untouched; callers enforce their own required fields.
func Decode(frontMatter string, out any) error {
	if strings.TrimSpace(frontMatter) == "" {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(frontMatter)))
	if err := dec.Decode(out); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.FrontMatterError("malformed front matter").WithCause(err).Build()
	}
	return nil
}

// MissingField builds the error reported for an absent required field.
func MissingField(field string) *errors.ClassifiedError {
	return errors.FrontMatterError("missing required field").
		WithContext("field", field).
		Build()
}
