// Package markdown converts the HTML marketing copy of the catalog into chat markdown.
package markdown

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

type Converter struct {
	conv *md.Converter
}

func NewConverter() *Converter {
	return &Converter{conv: md.NewConverter("", true, nil)}
}

// Convert renders html as markdown with surrounding whitespace trimmed.
func (c *Converter) Convert(html string) (string, error) {
	out, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert markup to markdown: %w", err)
	}

	return strings.TrimSpace(out), nil
}
