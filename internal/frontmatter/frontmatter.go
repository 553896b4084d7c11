// Package frontmatter splits optional metadata off the top of a song source.
//
// Two formats are recognised, opening on the first non-blank line:
//   - YAML: between --- delimiters
//   - TOML: between +++ delimiters
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a front matter block does not decode.
var ErrMalformed = errors.New("malformed front matter")

// Meta is the metadata a song may declare.
type Meta struct {
	// Title is used when the song has no heading.
	Title string `yaml:"title" toml:"title"`
}

var tomlFormat = frontmatter.NewFormat("+++", "+++", toml.Unmarshal)

// Split separates front matter from content. Content without front matter
// comes back unchanged with a zero Meta. A --- block that is not a YAML
// mapping is a pair of dividers, not front matter.
func Split(content string) (Meta, string, error) {
	var meta Meta

	dividers := false
	yamlFormat := frontmatter.NewFormat("---", "---", func(data []byte, v any) error {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return err
		}
		if len(doc.Content) == 0 {
			return nil
		}
		if doc.Content[0].Kind != yaml.MappingNode {
			dividers = true
			return nil
		}
		return doc.Decode(v)
	})

	body, err := frontmatter.Parse(strings.NewReader(content), &meta, yamlFormat, tomlFormat)
	if err != nil {
		return Meta{}, "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dividers || len(body) == len(content) {
		return Meta{}, content, nil
	}
	return meta, strings.TrimLeft(string(body), "\r\n"), nil
}
