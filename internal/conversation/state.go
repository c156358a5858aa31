package conversation

// State is the single finite-state value attached to a session.
type State string

const (
	StateGreeting       State = "greeting"
	StateCollectingInfo State = "collecting_info"
	StateTechQuestions  State = "tech_questions"
	StateCompleted      State = "completed"
	StateEnded          State = "ended"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateEnded
}
