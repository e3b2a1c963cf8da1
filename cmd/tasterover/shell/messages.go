package shell

// Bubble Tea message types

// flowSettledMsg is sent when a flow's request has finished, successfully or
// not. The model re-reads the flow's state from the session.
type flowSettledMsg struct {
	flow string // "weather", "nutrition", "menu"
}

// navErrMsg reports a rejected screen change.
type navErrMsg struct {
	err error
}
