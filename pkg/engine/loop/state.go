package loop

// State is one screen of the game, such as gameplay or a pause overlay.
type State interface {
	Name() string
	FixedUpdate(dt float32)
	VariableUpdate(dt float32)
	Render(dt float32)
}

// Stack holds the active states. Only the top state is updated; every state
// is rendered from the bottom up so overlays draw over what they cover.
type Stack struct {
	states []State
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push makes s the active state.
func (s *Stack) Push(st State) {
	s.states = append(s.states, st)
}

// PushClear replaces the whole stack with st.
func (s *Stack) PushClear(st State) {
	s.Clear()
	s.Push(st)
}

// Pop removes the active state. Popping an empty stack does nothing.
func (s *Stack) Pop() {
	if len(s.states) == 0 {
		return
	}
	s.states[len(s.states)-1] = nil
	s.states = s.states[:len(s.states)-1]
}

// Clear removes every state.
func (s *Stack) Clear() {
	s.states = nil
}

// Top returns the active state, or nil.
func (s *Stack) Top() State {
	if len(s.states) == 0 {
		return nil
	}
	return s.states[len(s.states)-1]
}

// Empty reports whether no state is active.
func (s *Stack) Empty() bool {
	return len(s.states) == 0
}

// Len returns the number of states.
func (s *Stack) Len() int {
	return len(s.states)
}

func (s *Stack) FixedUpdate(dt float32) {
	if top := s.Top(); top != nil {
		top.FixedUpdate(dt)
	}
}

func (s *Stack) VariableUpdate(dt float32) {
	if top := s.Top(); top != nil {
		top.VariableUpdate(dt)
	}
}

func (s *Stack) Render(dt float32) {
	for _, st := range s.states {
		st.Render(dt)
	}
}
