// Package board decodes and encodes the simulator's board artifact: a header
// line "XxYxZ" followed by one line of comma-separated cell states.
package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"voxca/internal/core"
)

// FileName is the fixed name of the board artifact.
const FileName = "board.txt"

var (
	// ErrMalformedHeader reports a first line that is not three positive
	// integers joined by 'x'.
	ErrMalformedHeader = errors.New("board: malformed header")
	// ErrMalformedValue reports a state that is not a non-negative integer,
	// or a missing state line.
	ErrMalformedValue = errors.New("board: malformed state value")
	// ErrVolumeMismatch reports a state count different from X*Y*Z.
	ErrVolumeMismatch = errors.New("board: state count does not match volume")
)

// Board is a decoded board artifact.
type Board struct {
	Dims   core.Dims `json:"dims"`
	States []int     `json:"states"`
}

// Decode parses raw artifact bytes. Nothing is returned unless the whole
// artifact is well formed.
func Decode(data []byte) (*Board, error) {
	lines := strings.SplitN(string(data), "\n", 3)
	dims, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: missing state line", ErrMalformedValue)
	}
	states, err := parseStates(lines[1])
	if err != nil {
		return nil, err
	}
	if len(states) != dims.Volume() {
		return nil, fmt.Errorf("%w: header %s declares %d, found %d",
			ErrVolumeMismatch, dims, dims.Volume(), len(states))
	}
	return &Board{Dims: dims, States: states}, nil
}

// ReadFile reads and decodes the artifact at path.
func ReadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("board: read %s: %w", path, err)
	}
	b, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func parseHeader(line string) (core.Dims, error) {
	line = strings.TrimSpace(line)
	parts := strings.Split(line, "x")
	if len(parts) != 3 {
		return core.Dims{}, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	var ext [3]int
	volume := 1
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return core.Dims{}, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		if n > math.MaxInt/volume {
			return core.Dims{}, fmt.Errorf("%w: %q: volume overflows", ErrMalformedHeader, line)
		}
		volume *= n
		ext[i] = n
	}
	return core.Dims{X: ext[0], Y: ext[1], Z: ext[2]}, nil
}

func parseStates(line string) ([]int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	tokens := strings.Split(line, ",")
	// The reference simulator terminates every value with a comma.
	if tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	states := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: position %d: %q", ErrMalformedValue, i, tok)
		}
		states[i] = n
	}
	return states, nil
}

// Encode writes b in the reference simulator's layout: header, newline, then
// every state followed by a comma.
func Encode(w io.Writer, b *Board) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(b.Dims.String() + "\n"); err != nil {
		return fmt.Errorf("board: write header: %w", err)
	}
	for _, s := range b.States {
		bw.WriteString(strconv.Itoa(s))
		bw.WriteByte(',')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("board: write states: %w", err)
	}
	return nil
}

// WriteFile encodes b to path.
func WriteFile(path string, b *Board) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("board: create %s: %w", path, err)
	}
	if err := Encode(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
