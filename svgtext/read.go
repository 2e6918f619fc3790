package svgtext

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/benoitkugler/pdflayout/css"
	"golang.org/x/net/html/charset"
)

// ErrorMode controls the behavior of the reader when it
// encounters an element it does not handle.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unhandled elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for unhandled elements.
	WarnErrorMode
	// StrictErrorMode errors out on the first unhandled element.
	StrictErrorMode
)

// textCursor tracks the state of the reader: the stack of open
// branch elements, and the collected roots.
type textCursor struct {
	roots     []*BranchRenderer
	stack     []*BranchRenderer
	errorMode ErrorMode
}

func (c *textCursor) current() *BranchRenderer {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *textCursor) pushElement(se xml.StartElement) error {
	attrs := map[string]string{}
	var style string
	for _, attr := range se.Attr {
		if attr.Name.Local == "style" {
			style = attr.Value
			continue
		}
		attrs[attr.Name.Local] = attr.Value
	}
	// the style attribute wins over presentation attributes
	attrs, err := css.MergeStyle(attrs, style)
	if err != nil {
		return err
	}
	branch := NewBranchRenderer(attrs)
	if parent := c.current(); parent != nil {
		parent.AddChild(branch)
	} else {
		c.roots = append(c.roots, branch)
	}
	c.stack = append(c.stack, branch)
	return nil
}

func (c *textCursor) unhandled(name string) error {
	if c.errorMode == StrictErrorMode {
		return fmt.Errorf("cannot process svg element %s", name)
	} else if c.errorMode == WarnErrorMode {
		log.Printf("cannot process svg element %s\n", name)
	}
	return nil
}

// ReadTextStream reads the text and tspan trees of an SVG
// fragment from the given io.Reader. errMode determines if the
// reader ignores, errors out, or logs a warning when it meets an
// element it does not handle.
func ReadTextStream(stream io.Reader, errMode ErrorMode) ([]*BranchRenderer, error) {
	cursor := &textCursor{errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid svg xml fragment")
				}
				break
			}
			return cursor.roots, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			switch se.Name.Local {
			case "text", "tspan":
				if err = cursor.pushElement(se); err != nil {
					return cursor.roots, err
				}
			case "svg", "g": // containers, nothing to store
			default:
				if err = cursor.unhandled(se.Name.Local); err != nil {
					return cursor.roots, err
				}
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "text", "tspan":
				if len(cursor.stack) != 0 {
					cursor.stack = cursor.stack[:len(cursor.stack)-1]
				}
			}
		case xml.CharData:
			if parent := cursor.current(); parent != nil {
				parent.AddChild(NewLeafRenderer(string(se)))
			}
		}
	}
	return cursor.roots, nil
}

// ReadText reads the text trees from the named file.
func ReadText(path string, errMode ErrorMode) ([]*BranchRenderer, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadTextStream(fin, errMode)
}
