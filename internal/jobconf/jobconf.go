// Package jobconf reads and writes the flat key=value configuration files the
// simulator consumes.
package jobconf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"voxca/internal/core"
)

// FileName is the fixed name of the config artifact.
const FileName = "config.txt"

// ErrReservedChar reports a field that cannot be written as one key=value
// line.
var ErrReservedChar = errors.New("jobconf: reserved character")

// ValidateField checks that f survives Serialize and Parse unchanged: the key
// must be free of '=', and neither side may contain a line break.
func ValidateField(f core.Field) error {
	if strings.ContainsAny(f.Key, "=\n\r") {
		return fmt.Errorf("%w in field name %q", ErrReservedChar, f.Key)
	}
	if strings.ContainsAny(f.Value, "\n\r") {
		return fmt.Errorf("%w in value of %q", ErrReservedChar, f.Key)
	}
	return nil
}

// Serialize renders the job fields as key=value lines in field order. Keys
// and values are written verbatim; callers must keep '=' out of keys and
// newlines out of both.
func Serialize(job core.ConfigJob) []byte {
	var buf bytes.Buffer
	for _, f := range job.Fields {
		buf.WriteString(f.Key)
		buf.WriteByte('=')
		buf.WriteString(f.Value)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Parse reads key=value lines. The key ends at the first '='. Blank lines are
// skipped and trailing carriage returns are dropped.
func Parse(r io.Reader) ([]core.Field, error) {
	var fields []core.Field
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("jobconf: line %d: missing '=' in %q", line, text)
		}
		fields = append(fields, core.Field{Key: key, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("jobconf: read: %w", err)
	}
	return fields, nil
}
