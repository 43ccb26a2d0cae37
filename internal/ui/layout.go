package ui

import (
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"voxca/internal/core"
	"voxca/internal/runner"
)

// RowKind tells what a panel row shows.
type RowKind int

const (
	RowHeader RowKind = iota
	RowQueued
	RowFailure
	RowResult
)

// Row is one block of text in the side panel. Index is the queue position,
// failure number or result index depending on Kind.
type Row struct {
	Kind  RowKind
	Index int
	Lines []string
	Rect  image.Rectangle
}

const (
	panelPadding = 12
	textLine     = 16
	rowGap       = 8
)

// Layout stacks the queue, failures and results into rows of width w.
func Layout(snap runner.Snapshot, records []core.ResultRecord, w int) []Row {
	var rows []Row
	y := panelPadding
	add := func(kind RowKind, idx int, lines ...string) {
		h := len(lines)*textLine + rowGap
		rows = append(rows, Row{
			Kind:  kind,
			Index: idx,
			Lines: lines,
			Rect:  image.Rect(0, y, w, y+h),
		})
		y += h
	}

	title := cases.Title(language.English)
	add(RowHeader, -1, fmt.Sprintf("Queue (%s)", title.String(snap.State.String())))
	for i, j := range snap.Queue {
		marker := "  "
		if i == 0 && snap.State != runner.Idle {
			marker = "> "
		}
		s := j.Summary()
		add(RowQueued, i, marker+s[0], "  "+s[1])
	}
	if len(snap.Failures) > 0 {
		add(RowHeader, -1, fmt.Sprintf("Failed (%d)", len(snap.Failures)))
		for i, f := range snap.Failures {
			add(RowFailure, i, fmt.Sprintf("  %s: %s", title.String(string(f.Stage)), truncate(f.Error, 40)))
		}
	}
	add(RowHeader, -1, "Results")
	for _, rec := range records {
		s := rec.Job.Summary()
		add(RowResult, rec.Index, fmt.Sprintf("#%d %s", rec.Index, s[0]), "   "+s[1])
	}
	return rows
}

// RowAt returns the row under (x, y).
func RowAt(rows []Row, x, y int) (Row, bool) {
	p := image.Pt(x, y)
	for _, r := range rows {
		if p.In(r.Rect) {
			return r, true
		}
	}
	return Row{}, false
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return strings.Repeat(".", max(n, 0))
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
