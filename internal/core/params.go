package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes yes/no parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeChoice denotes a value picked from a fixed set.
	ParamTypeChoice ParamType = "choice"
)

// Well-known configuration keys understood by the simulator.
const (
	FieldXSize        = "x_size"
	FieldYSize        = "y_size"
	FieldZSize        = "z_size"
	FieldRandomSeeds  = "random_seeds"
	FieldMCIterations = "MC_iterations"
	FieldMCKt         = "MC_kt"
	FieldPeriodic     = "periodic"
	FieldMethod       = "method"
)

// Parameter describes a single configuration field offered to users.
type Parameter struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        ParamType `json:"type"`
	Default     string    `json:"default"`
	Choices     []string  `json:"choices,omitempty"`
	Description string    `json:"description,omitempty"`
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string      `json:"name"`
	Params []Parameter `json:"params"`
}

// KnownParameters lists the fields the submission form presents. Jobs may
// carry additional keys; they are passed through untouched.
func KnownParameters() []ParameterGroup {
	return []ParameterGroup{
		{
			Name: "Board",
			Params: []Parameter{
				{Key: FieldXSize, Label: "X size", Type: ParamTypeInt, Default: "10"},
				{Key: FieldYSize, Label: "Y size", Type: ParamTypeInt, Default: "10"},
				{Key: FieldZSize, Label: "Z size", Type: ParamTypeInt, Default: "10"},
				{Key: FieldRandomSeeds, Label: "Random seeds", Type: ParamTypeInt, Default: "10"},
				{Key: FieldPeriodic, Label: "Periodic", Type: ParamTypeBool, Default: "no", Choices: []string{"yes", "no"}},
				{Key: FieldMethod, Label: "Neighbourhood", Type: ParamTypeChoice, Default: "Moore", Choices: []string{"Moore", "VonNeumann"}},
			},
		},
		{
			Name: "Monte Carlo",
			Params: []Parameter{
				{Key: FieldMCIterations, Label: "Iterations", Type: ParamTypeInt, Default: "0"},
				{Key: FieldMCKt, Label: "kT", Type: ParamTypeFloat, Default: "0.6", Description: "boundary energy temperature"},
			},
		},
	}
}
