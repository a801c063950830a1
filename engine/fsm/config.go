package fsm

// RootConfig represents the top-level config structure
type RootConfig struct {
	InitialState string                  `yaml:"initial"`
	States       map[string]*StateConfig `yaml:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	Parent      string             `yaml:"parent,omitempty"`
	OnEnter     []string           `yaml:"on_enter,omitempty"`
	OnExit      []string           `yaml:"on_exit,omitempty"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
}

// TransitionConfig represents a transition definition
type TransitionConfig struct {
	Trigger string `yaml:"trigger"`         // Event Name or "Tick"
	Target  string `yaml:"target"`          // Target state name
	Guard   string `yaml:"guard,omitempty"` // Guard function name, "!" prefix negates
}
