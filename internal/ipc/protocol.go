// Package ipc carries control requests between golos CLI invocations and the
// running assistant over a unix socket, one NDJSON request per connection.
package ipc

// Control commands understood by the assistant.
const (
	CommandStatus  = "status"
	CommandEnable  = "enable"
	CommandDisable = "disable"
	CommandReload  = "reload"
	CommandInject  = "inject"
)

// Request names one control command. Text carries the utterance for inject.
type Request struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`
}

// Response reports the outcome of a request plus an assistant status snapshot.
type Response struct {
	OK      bool    `json:"ok"`
	Status  *Status `json:"status,omitempty"`
	Message string  `json:"message,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Status is the observable assistant state.
type Status struct {
	CommandsEnabled bool     `json:"commands_enabled"`
	Note            string   `json:"note"`
	NoteLines       int      `json:"note_lines"`
	Commands        int      `json:"commands"`
	TableStale      bool     `json:"table_stale,omitempty"`
	Pending         []string `json:"pending,omitempty"`
}
