package runtime

import (
	"context"
	"os"
	"time"
)

// DefaultExecutor implements Executor for the four concrete Command
// types spec.md names besides quit/none: a one-shot timer, a
// send-after, a repeating interval, and a file read. CmdNone and
// CmdQuit never reach an executor (quit is handled by the Runtime
// before dispatch; none is skipped by the Runtime as a no-op).
type DefaultExecutor struct{}

// Execute runs cmd's side effect, delivering one or more results via
// deliver. For CmdInterval, deliver is called repeatedly until ctx is
// canceled (command canceled or its Runtime shut down).
func (DefaultExecutor) Execute(ctx context.Context, cmd Command, deliver func(result any)) {
	switch cmd.Type {
	case CmdTimer, CmdSendAfter:
		d, _ := cmd.Payload.(time.Duration)
		select {
		case <-time.After(d):
			deliver(cmd.Payload)
		case <-ctx.Done():
		}
	case CmdInterval:
		d, _ := cmd.Payload.(time.Duration)
		if d <= 0 {
			return
		}
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deliver(cmd.Payload)
			case <-ctx.Done():
				return
			}
		}
	case CmdFileRead:
		path, _ := cmd.Payload.(string)
		data, err := os.ReadFile(path)
		if err != nil {
			deliver(err)
			return
		}
		deliver(data)
	}
}
