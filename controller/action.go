package controller

// Action is a logical input category, decoupled from any physical key.
type Action string

const (
	MoveForward Action = "MoveForward"
	MoveBack    Action = "MoveBack"
	MoveLeft    Action = "MoveLeft"
	MoveRight   Action = "MoveRight"
	Jump        Action = "Jump"
)

// Actions returns the fixed action identifiers the controller maps.
func Actions() []Action {
	return []Action{MoveForward, MoveBack, MoveLeft, MoveRight, Jump}
}

// ActionSet is the set of actions currently held by the input layer.
type ActionSet map[Action]struct{}

func NewActionSet(actions ...Action) ActionSet {
	set := make(ActionSet, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// ParseActionSet builds a set from raw names. Unknown names are dropped.
func ParseActionSet(names []string) ActionSet {
	set := make(ActionSet, len(names))
	for _, name := range names {
		a := Action(name)
		if !a.Known() {
			continue
		}
		set[a] = struct{}{}
	}
	return set
}

func (s ActionSet) Has(a Action) bool {
	if s == nil {
		return false
	}
	_, ok := s[a]
	return ok
}

func (s ActionSet) Add(a Action) {
	if s == nil {
		return
	}
	s[a] = struct{}{}
}

// Known reports whether a is one of the controller's fixed actions.
func (a Action) Known() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// ActionEdge is the per-action state refreshed once per input sample.
type ActionEdge struct {
	Active        bool
	JustActivated bool
}

// ActionState owns the edge table. Sample it at most once per input poll;
// sampling twice between physics ticks erases a just-pressed edge.
type ActionState struct {
	known []Action
	edges map[Action]ActionEdge
}

func NewActionState(actions ...Action) *ActionState {
	if len(actions) == 0 {
		actions = Actions()
	}
	known := append([]Action(nil), actions...)
	edges := make(map[Action]ActionEdge, len(known))
	for _, a := range known {
		edges[a] = ActionEdge{}
	}
	return &ActionState{known: known, edges: edges}
}

// Sample refreshes every known action from the set of active names and
// returns an immutable snapshot of the resulting table.
func (s *ActionState) Sample(active ActionSet) Snapshot {
	for _, a := range s.known {
		prev := s.edges[a]
		if !active.Has(a) {
			s.edges[a] = ActionEdge{}
			continue
		}
		s.edges[a] = ActionEdge{Active: true, JustActivated: !prev.Active}
	}
	return s.Snapshot()
}

func (s *ActionState) Edge(a Action) ActionEdge {
	return s.edges[a]
}

func (s *ActionState) Snapshot() Snapshot {
	edges := make(map[Action]ActionEdge, len(s.edges))
	for a, e := range s.edges {
		edges[a] = e
	}
	return Snapshot{edges: edges}
}

// Snapshot is a read-only copy of the edge table for one sample.
// The zero value reports every action inactive.
type Snapshot struct {
	edges map[Action]ActionEdge
}

func (s Snapshot) Edge(a Action) ActionEdge {
	return s.edges[a]
}

// Consumed returns the same table with every just-pressed edge cleared.
// Ticks after the first one of a frame see this copy.
func (s Snapshot) Consumed() Snapshot {
	edges := make(map[Action]ActionEdge, len(s.edges))
	for a, e := range s.edges {
		e.JustActivated = false
		edges[a] = e
	}
	return Snapshot{edges: edges}
}

// Merge folds a newer snapshot over s. Active comes from next; a
// just-pressed edge in s survives until some tick consumes it.
func (s Snapshot) Merge(next Snapshot) Snapshot {
	edges := make(map[Action]ActionEdge, len(next.edges))
	for a, e := range next.edges {
		edges[a] = e
	}
	for a, e := range s.edges {
		if !e.JustActivated {
			continue
		}
		merged := edges[a]
		merged.JustActivated = true
		edges[a] = merged
	}
	return Snapshot{edges: edges}
}

// Active lists the actions held in this snapshot, in Actions() order.
func (s Snapshot) Active() []Action {
	var out []Action
	for _, a := range Actions() {
		if s.edges[a].Active {
			out = append(out, a)
		}
	}
	return out
}
