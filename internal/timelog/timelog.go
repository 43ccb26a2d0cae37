// Package timelog parses the timing report the simulator prints to stdout.
//
// Each line is either "Key=N" or "Key=N,N,N," (one value per iteration).
// Lines that do not fit are kept verbatim so nothing the simulator printed is
// lost.
package timelog

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"time"
)

// FileName is the fixed name of the time-log artifact.
const FileName = "time.txt"

// Entry is one line of the report. Raw is set and Values is nil for lines
// that are not key=integers.
type Entry struct {
	Key    string  `json:"key,omitempty"`
	Values []int64 `json:"values,omitempty"`
	Raw    string  `json:"raw,omitempty"`
}

// Total sums the entry's values, interpreted as milliseconds.
func (e Entry) Total() time.Duration {
	var sum int64
	for _, v := range e.Values {
		sum += v
	}
	return time.Duration(sum) * time.Millisecond
}

// Log is a parsed report.
type Log struct {
	Entries []Entry `json:"entries"`
}

// Get returns the first entry named key.
func (l Log) Get(key string) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Parse reads a report. It never fails; unparseable lines become raw entries.
func Parse(data []byte) Log {
	var out Log
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out.Entries = append(out.Entries, parseLine(line))
	}
	return out
}

func parseLine(line string) Entry {
	key, rest, ok := strings.Cut(line, "=")
	if !ok || key == "" {
		return Entry{Raw: line}
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ",")
	values := []int64{}
	if rest != "" {
		for _, tok := range strings.Split(rest, ",") {
			n, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
			if err != nil {
				return Entry{Raw: line}
			}
			values = append(values, n)
		}
	}
	return Entry{Key: key, Values: values}
}
