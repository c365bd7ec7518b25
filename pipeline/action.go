package pipeline

// Action is one processing step of a Pipeline.
type Action interface {
	// Process handles msg and returns the message the next action should see.
	Process(msg *Message) (*Message, error)
}

// Configurable actions are handed their Properties before Initialize.
type Configurable interface {
	Configure(props Properties) error
}

// Initializer actions are initialized once before the first message.
type Initializer interface {
	Initialize() error
}

// Destroyer actions are destroyed once after the last message, if Initialize succeeded.
type Destroyer interface {
	Destroy() error
}

// ActionFunc adapts a function to an Action.
type ActionFunc func(msg *Message) (*Message, error)

func (f ActionFunc) Process(msg *Message) (*Message, error) {
	return f(msg)
}
