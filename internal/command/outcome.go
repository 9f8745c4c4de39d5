package command

// Statuses of a command outcome envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome is the structured result of one executed command. Every concrete
// result shares the {status, message} envelope; command-specific fields ride
// alongside it.
type Outcome interface {
	IsError() bool
}

type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e Envelope) IsError() bool { return e.Status == StatusError }

// Failure builds the uniform error outcome surfaced for every recoverable
// command failure.
func Failure(message string) Envelope {
	return Envelope{Status: StatusError, Message: message}
}

func success(message string) Envelope {
	return Envelope{Status: StatusSuccess, Message: message}
}

type UsernameResult struct {
	Envelope
	Handle string `json:"username,omitempty"`
}

func NewUsernameResult(message, handle string) UsernameResult {
	return UsernameResult{Envelope: success(message), Handle: handle}
}

type SendResult struct {
	Envelope
	Target  string `json:"target,omitempty"`
	KeyName string `json:"key,omitempty"`
}

func NewSendResult(message, target, keyName string) SendResult {
	return SendResult{Envelope: success(message), Target: target, KeyName: keyName}
}

type MediaResult struct {
	Envelope
	Target string `json:"target,omitempty"`
	Path   string `json:"path,omitempty"`
}

func NewMediaResult(message, target, path string) MediaResult {
	return MediaResult{Envelope: success(message), Target: target, Path: path}
}

type ShareResult struct {
	Envelope
	Target string `json:"target,omitempty"`
}

func NewShareResult(message, target string) ShareResult {
	return ShareResult{Envelope: success(message), Target: target}
}

type CallResult struct {
	Envelope
	Type   string `json:"type,omitempty"`
	Room   string `json:"room,omitempty"`
	Target string `json:"target,omitempty"`
}

func NewCallResult(message, callType, room, target string) CallResult {
	return CallResult{Envelope: success(message), Type: callType, Room: room, Target: target}
}
