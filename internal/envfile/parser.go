package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/kballard/go-shellquote"
)

// maxLineSize bounds a single env line. Certificates and keys pasted into
// a quoted value can exceed bufio's 64KiB default.
const maxLineSize = 1024 * 1024

// ParseError describes a line that could not be parsed.
type ParseError struct {
	Line    int
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %q: %v: %v", e.Line, e.Content, kerrors.ErrMalformedLine, e.Err)
	}
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Content, kerrors.ErrMalformedLine)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{kerrors.ErrMalformedLine, e.Err}
	}
	return []error{kerrors.ErrMalformedLine}
}

// Parse reads the env file at path.
// Returns ErrSourceNotFound if path does not exist and a *ParseError for
// the first malformed line.
func Parse(path string) (*Env, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, kerrors.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	env, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

// ParseReader parses env content from r.
func ParseReader(r io.Reader) (*Env, error) {
	env := NewEnv()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, extra, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: line, Err: err}
		}

		env.Set(entry.Key, entry.Value)
		if extra {
			env.markTruncated(entry.Key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read env content: %w", err)
	}

	return env, nil
}

// Entry is a single parsed KEY=value line.
type Entry struct {
	Key   string
	Value string
}

// parseLine splits an already-trimmed, non-comment line. extra reports
// whether shell splitting produced words beyond the first.
func parseLine(line string) (Entry, bool, error) {
	key, rawValue, ok := strings.Cut(line, "=")
	if !ok {
		return Entry{}, false, errors.New("missing '='")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return Entry{}, false, errors.New("empty key")
	}

	words, err := shellquote.Split(rawValue)
	if err != nil {
		return Entry{}, false, err
	}

	if len(words) == 0 {
		return Entry{Key: key}, false, nil
	}
	return Entry{Key: key, Value: words[0]}, len(words) > 1, nil
}
