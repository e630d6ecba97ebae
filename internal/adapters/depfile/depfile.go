// Package depfile reads and writes Make-style dependency records as emitted
// by compilers with -MD.
package depfile

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyReader = (*Reader)(nil)

// Reader parses dependency records.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the prerequisites of the first rule in the record at path.
// A missing record yields no prerequisites.
func (r *Reader) Read(path string) ([]string, error) {
	//nolint:gosec // Path is derived from the object layout
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDependencyRecordReadFailed.Error()), "path", path)
	}
	return Parse(data), nil
}

// Parse extracts the prerequisites of the first rule. Continuation lines,
// escaped spaces and doubled dollar signs are understood. Rules after the
// first, such as the phony targets written by -MP, are ignored.
func Parse(data []byte) []string {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\\\n"), []byte(" "))

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		tokens := tokenize(sc.Text())
		for i, tok := range tokens {
			if tok == ":" || (strings.HasSuffix(tok, ":") && !isDriveLetter(tok)) {
				return tokens[i+1:]
			}
		}
	}
	return nil
}

func tokenize(line string) []string {
	var tokens []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == ' ':
			cur.WriteByte(' ')
			i++
		case c == '$' && i+1 < len(line) && line[i+1] == '$':
			cur.WriteByte('$')
			i++
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return tokens
}

// isDriveLetter reports whether tok is a bare Windows drive such as "C:".
func isDriveLetter(tok string) bool {
	return len(tok) == 2 && tok[1] == ':' &&
		(tok[0] >= 'A' && tok[0] <= 'Z' || tok[0] >= 'a' && tok[0] <= 'z')
}

// Write stores a record of target depending on prerequisites at path.
func Write(path, target string, prerequisites []string) error {
	var b strings.Builder
	b.WriteString(escape(target))
	b.WriteString(":")
	for _, p := range prerequisites {
		b.WriteString(" \\\n  ")
		b.WriteString(escape(p))
	}
	b.WriteString("\n")

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, []byte(b.String()), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write dependency record"), "path", path)
	}
	return nil
}

func escape(path string) string {
	path = filepath.ToSlash(path)
	path = strings.ReplaceAll(path, "$", "$$")
	return strings.ReplaceAll(path, " ", "\\ ")
}
