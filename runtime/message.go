package runtime

import "time"

// Message is an opaque value produced by a component's EventToMsg and
// consumed by that component's Update.
type Message any

// CommandType enumerates the kinds of side effect a Command asks the
// Runtime to carry out.
type CommandType uint8

const (
	CmdNone CommandType = iota
	CmdTimer
	CmdInterval
	CmdFileRead
	CmdSendAfter
	CmdQuit
)

// Command describes a side effect a component's Update wants performed.
// Its completion (or timeout) is delivered back as a Message to the
// originating component via OnResult.
type Command struct {
	Type     CommandType
	Payload  any
	OnResult func(result any) Message
	Timeout  time.Duration
}

// CommandID is an opaque reference to a pending command, handed out by
// the Runtime when a command is registered.
type CommandID uint64

// EventResult is the outcome of EventToMsg for one event.
type EventResult struct {
	Kind EventResultKind
	Msg  Message
}

// EventResultKind discriminates EventResult.
type EventResultKind uint8

const (
	ResultIgnore EventResultKind = iota
	ResultMsg
	ResultPropagate
)

// Ignore returns the "do nothing" EventToMsg result.
func Ignore() EventResult { return EventResult{Kind: ResultIgnore} }

// Msg returns the "enqueue this message" EventToMsg result.
func Msg(m Message) EventResult { return EventResult{Kind: ResultMsg, Msg: m} }

// Propagate returns the "forward to parent" EventToMsg result.
func Propagate() EventResult { return EventResult{Kind: ResultPropagate} }

// UpdateResult is the normalized outcome of a component's Update.
type UpdateResult struct {
	State    any
	Commands []Command
}

// Reply returns an UpdateResult with new state and no commands.
func Reply(state any) UpdateResult { return UpdateResult{State: state} }

// ReplyWith returns an UpdateResult with new state and commands.
func ReplyWith(state any, cmds ...Command) UpdateResult {
	return UpdateResult{State: state, Commands: cmds}
}
