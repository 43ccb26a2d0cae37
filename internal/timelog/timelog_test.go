package timelog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseReferenceReport(t *testing.T) {
	report := "ReadConfig=1\nAllBoard=0\nIterations=3,4,5,\nStructure_generation=12\nMCiterations=\nwarning: odd\nWriteToFile=2\n"

	got := Parse([]byte(report))
	want := Log{Entries: []Entry{
		{Key: "ReadConfig", Values: []int64{1}},
		{Key: "AllBoard", Values: []int64{0}},
		{Key: "Iterations", Values: []int64{3, 4, 5}},
		{Key: "Structure_generation", Values: []int64{12}},
		{Key: "MCiterations", Values: []int64{}},
		{Raw: "warning: odd"},
		{Key: "WriteToFile", Values: []int64{2}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}

	it, ok := got.Get("Iterations")
	if !ok {
		t.Fatal("Iterations entry missing")
	}
	if it.Total() != 12*time.Millisecond {
		t.Fatalf("Iterations total = %s", it.Total())
	}
}

func TestParseEmpty(t *testing.T) {
	if got := Parse(nil); len(got.Entries) != 0 {
		t.Fatalf("expected no entries, got %v", got.Entries)
	}
}
