package jobconf

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"voxca/internal/core"
)

// LoadBatch reads a YAML sequence of mappings, one mapping per job:
//
//	- x_size: 20
//	  y_size: 20
//	  z_size: 20
//	  random_seeds: 15
//
// Mapping order is preserved in the resulting job fields.
func LoadBatch(r io.Reader) ([]core.ConfigJob, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("jobconf: decode batch: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("jobconf: batch line %d: expected a list of jobs", root.Line)
	}
	jobs := make([]core.ConfigJob, 0, len(root.Content))
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("jobconf: batch line %d: job must be a mapping", item.Line)
		}
		fields := make([]core.Field, 0, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			k, v := item.Content[i], item.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("jobconf: batch line %d: value of %q must be a scalar", v.Line, k.Value)
			}
			f := core.Field{Key: k.Value, Value: v.Value}
			if err := ValidateField(f); err != nil {
				return nil, fmt.Errorf("jobconf: batch line %d: %w", k.Line, err)
			}
			fields = append(fields, f)
		}
		jobs = append(jobs, core.NewConfigJob(fields))
	}
	return jobs, nil
}

// LoadBatchFile is LoadBatch for a file on disk.
func LoadBatchFile(path string) ([]core.ConfigJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jobconf: open batch: %w", err)
	}
	defer f.Close()
	return LoadBatch(f)
}
