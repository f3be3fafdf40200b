package svgdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ErrMalformed is returned by Check for documents with unbalanced tags.
var ErrMalformed = errors.New("svgdoc: malformed document")

// Check reports whether doc is a well-formed document with balanced tags and an
// 'svg' root element. A trailing NUL byte is ignored.
func Check(doc []byte) error {
	doc = bytes.TrimRight(doc, "\x00")
	l := xml.NewLexer(parse.NewInputBytes(doc))
	var open []string
	roots := 0
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if len(open) > 0 {
				return fmt.Errorf("%w: element <%s> not closed", ErrMalformed, open[len(open)-1])
			}
			if roots != 1 {
				return fmt.Errorf("%w: expected one root element, have %d", ErrMalformed, roots)
			}
			return nil
		case xml.StartTagToken:
			name := string(bytes.TrimPrefix(data, []byte("<")))
			if len(open) == 0 {
				if name != "svg" {
					return fmt.Errorf("%w: root element is <%s>", ErrMalformed, name)
				}
				roots++
			}
			open = append(open, name)
		case xml.StartTagCloseVoidToken:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		case xml.EndTagToken:
			name := string(bytes.Trim(data, "</> \t\n"))
			if len(open) == 0 || open[len(open)-1] != name {
				return fmt.Errorf("%w: unexpected </%s>", ErrMalformed, name)
			}
			open = open[:len(open)-1]
		case xml.TextToken:
			if len(bytes.TrimSpace(data)) > 0 && len(open) == 0 {
				return fmt.Errorf("%w: text outside of root element", ErrMalformed)
			}
		}
	}
}
