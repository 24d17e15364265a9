package models

// TriggerKind is what started a copilot turn
type TriggerKind string

const (
	TriggerBackground TriggerKind = "background"
	TriggerManual     TriggerKind = "manual"
)

// TriggerRequest is the input to one copilot turn
type TriggerRequest struct {
	Kind     TriggerKind
	Command  string
	Position *Position
	Weather  WeatherSnapshot
	Nearby   []ProximityEvent
	Language string
	Premium  bool
}

// CopilotReply is what the copilot says back. Fallback is set when the
// generator failed and a static phrase was substituted.
type CopilotReply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
	Err      error  `json:"-"`
}

// GenerationRequest is sent to the external text-generation provider
type GenerationRequest struct {
	SystemInstruction string
	Language          string
	Prompt            string
	Temperature       float32
}
