package grain

import (
	"fmt"
	"strconv"

	"voxca/internal/core"
)

// Neighbourhood names.
const (
	Moore      = "Moore"
	VonNeumann = "VonNeumann"
)

// Config controls the grain growth automaton.
type Config struct {
	Dims          core.Dims
	Periodic      bool
	Neighbourhood string
	Seeds         int
	MCIterations  int
	MCKt          float64

	// Seed drives every random choice. HasSeed is false when the config did
	// not name one and the caller should pick a fresh seed.
	Seed    int64
	HasSeed bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Dims:          core.Dims{X: 10, Y: 10, Z: 10},
		Periodic:      false,
		Neighbourhood: Moore,
		Seeds:         10,
		MCIterations:  0,
		MCKt:          0.6,
	}
}

// FromFields populates the config from key=value fields. Values that cannot
// be used are reported in the returned warnings and the default is kept.
func FromFields(fields []core.Field) (Config, []string) {
	c := DefaultConfig()
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	positive := func(f core.Field, dst *int) {
		n, err := strconv.Atoi(f.Value)
		if err != nil || n <= 0 {
			warn("config value %q for %q not supported", f.Value, f.Key)
			return
		}
		*dst = n
	}

	for _, f := range fields {
		switch f.Key {
		case core.FieldPeriodic:
			switch f.Value {
			case "yes":
				c.Periodic = true
			case "no":
				c.Periodic = false
			default:
				warn("config value %q for %q not supported", f.Value, f.Key)
			}
		case core.FieldMethod:
			if f.Value == Moore || f.Value == VonNeumann {
				c.Neighbourhood = f.Value
			} else {
				warn("config value %q for %q not supported", f.Value, f.Key)
			}
		case core.FieldXSize:
			positive(f, &c.Dims.X)
		case core.FieldYSize:
			positive(f, &c.Dims.Y)
		case core.FieldZSize:
			positive(f, &c.Dims.Z)
		case core.FieldRandomSeeds:
			n, err := strconv.Atoi(f.Value)
			if err != nil || n < 0 {
				warn("config value %q for %q not supported", f.Value, f.Key)
				continue
			}
			c.Seeds = n
		case core.FieldMCIterations:
			n, err := strconv.Atoi(f.Value)
			if err != nil || n < 0 {
				warn("config value %q for %q not supported", f.Value, f.Key)
				continue
			}
			c.MCIterations = n
		case core.FieldMCKt:
			v, err := strconv.ParseFloat(f.Value, 64)
			if err != nil || v < 0 {
				warn("config value %q for %q not supported", f.Value, f.Key)
				continue
			}
			c.MCKt = v
		case "seed":
			v, err := strconv.ParseInt(f.Value, 10, 64)
			if err != nil {
				warn("config value %q for %q not supported", f.Value, f.Key)
				continue
			}
			c.Seed = v
			c.HasSeed = true
		default:
			warn("config '%s=%s' not supported", f.Key, f.Value)
		}
	}
	return c, warnings
}
