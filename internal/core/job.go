package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Field is one key=value pair of a simulation configuration.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ConfigJob is one queued simulation request. Field order is the order in
// which the fields were submitted and is kept for display and serialization.
type ConfigJob struct {
	ID        string    `json:"id"`
	Fields    []Field   `json:"fields"`
	Submitted time.Time `json:"submitted"`
}

// NewConfigJob builds a job from submitted fields. Fields with an empty key
// are dropped. A repeated key keeps the position of its first occurrence and
// the value of its last one.
func NewConfigJob(fields []Field) ConfigJob {
	out := make([]Field, 0, len(fields))
	pos := make(map[string]int, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			continue
		}
		if i, ok := pos[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		pos[f.Key] = len(out)
		out = append(out, f)
	}
	return ConfigJob{
		ID:        uuid.NewString(),
		Fields:    out,
		Submitted: time.Now().UTC(),
	}
}

// Get returns the value stored under key.
func (j ConfigJob) Get(key string) (string, bool) {
	for _, f := range j.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func (j ConfigJob) value(key string) string {
	v, _ := j.Get(key)
	return v
}

// Summary returns the two display lines used by the queue and result lists.
func (j ConfigJob) Summary() []string {
	return []string{
		fmt.Sprintf("Board: %sx%sx%s, %s random seeds",
			j.value(FieldXSize), j.value(FieldYSize), j.value(FieldZSize), j.value(FieldRandomSeeds)),
		fmt.Sprintf("MC: %s iterations, kt=%s", j.value(FieldMCIterations), j.value(FieldMCKt)),
	}
}

// ResultRecord is a job whose run completed and whose artifacts were archived
// into Dir. Index is its position in the result list.
type ResultRecord struct {
	Index     int       `json:"index"`
	Dir       string    `json:"dir"`
	Job       ConfigJob `json:"job"`
	Completed time.Time `json:"completed"`
}

// FailureStage names the run-loop step that failed.
type FailureStage string

const (
	// StageLaunch covers writing the config and running the executable.
	StageLaunch FailureStage = "launch"
	// StageArchive covers moving artifacts into the result directory.
	StageArchive FailureStage = "archive"
)

// FailedRun records a job that was dropped from the queue without a result.
type FailedRun struct {
	Job   ConfigJob    `json:"job"`
	Stage FailureStage `json:"stage"`
	Error string       `json:"error"`
	At    time.Time    `json:"at"`
}
