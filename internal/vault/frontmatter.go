package vault

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates the note does not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("vault: missing frontmatter")
	// ErrMalformedFrontMatter indicates the YAML block could not be parsed.
	ErrMalformedFrontMatter = errors.New("vault: malformed frontmatter")
)

var (
	fence        = []byte("---\n")
	closingFence = []byte("\n---\n")
)

// SplitFrontMatter separates the YAML block from the body of a note that
// starts with `---` fences.
func SplitFrontMatter(content []byte) (meta, body []byte, err error) {
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, fence) {
		return nil, normalized, ErrMissingFrontMatter
	}
	rest := normalized[len(fence):]

	// An empty block closes on the very next line.
	if bytes.HasPrefix(rest, fence) {
		return nil, rest[len(fence):], nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return nil, nil, nil
	}

	parts := bytes.SplitN(rest, closingFence, 2)
	if len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	if bytes.HasSuffix(rest, []byte("\n---")) {
		return rest[:len(rest)-len("\n---")], nil, nil
	}
	return nil, nil, ErrMalformedFrontMatter
}

// decodeFrontMatter parses a note's YAML block into out.
func decodeFrontMatter(content []byte, out any) ([]byte, error) {
	meta, body, err := SplitFrontMatter(content)
	if err != nil {
		return body, err
	}
	if len(bytes.TrimSpace(meta)) == 0 {
		return body, nil
	}
	if err := yaml.Unmarshal(meta, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}
	return body, nil
}

// encodeFrontMatter renders v + body with YAML fences.
func encodeFrontMatter(v any, body []byte) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("vault: encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.Write(fence)
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.Write(closingFence)
	if len(body) > 0 {
		buf.WriteString("\n")
		buf.Write(body)
	}
	return buf.Bytes(), nil
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
