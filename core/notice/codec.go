package notice

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	frontMatterDelim = []byte("---")

	ErrInvalidDocument = errors.New("invalid notice document")
)

// Marshal encodes n as a document: YAML front-matter followed by the details.
func Marshal(n Notice) ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(frontMatterDelim)
	buf.WriteByte('\n')

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(n); err != nil {
		return nil, errors.Wrap(err, "encoding front-matter")
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding front-matter")
	}

	buf.Write(frontMatterDelim)
	buf.WriteString("\n\n")
	buf.WriteString(n.Details)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Unmarshal decodes a document written by Marshal.
func Unmarshal(data []byte) (Notice, error) {
	var n Notice

	data = bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(data, frontMatterDelim) {
		return n, errors.Wrap(ErrInvalidDocument, "missing front-matter")
	}
	parts := bytes.SplitN(data[len(frontMatterDelim):], append([]byte("\n"), frontMatterDelim...), 2)
	if len(parts) < 2 {
		return n, errors.Wrap(ErrInvalidDocument, "unterminated front-matter")
	}

	if err := yaml.Unmarshal(parts[0], &n); err != nil {
		return n, errors.Wrap(err, "decoding front-matter")
	}
	n.Details = details(parts[1], n.ID != uuid.Nil)
	return n, nil
}

// details extracts the body following the closing delimiter. Bodies written by Marshal are kept
// as is; hand-written ones are trimmed.
func details(body []byte, marshaled bool) string {
	if !marshaled {
		return string(bytes.TrimSpace(body))
	}
	body = bytes.TrimPrefix(body, []byte("\n\n"))
	return string(bytes.TrimSuffix(body, []byte("\n")))
}
