package ipc

import (
	"time"
)

// envelope pairs a command with its reply channel.
type envelope struct {
	cmd   Command
	reply chan Response
}

// Mailbox bridges socket goroutines onto the single-threaded event loop:
// HandleCommand parks the caller until the loop drains the command and
// replies. The annotation state is only ever touched from the loop.
type Mailbox struct {
	pending chan envelope
	timeout time.Duration
}

// DefaultMailboxTimeout bounds how long a control client waits for the
// event loop to pick its command up.
const DefaultMailboxTimeout = 5 * time.Second

// NewMailbox builds a mailbox with the given queue depth.
func NewMailbox(depth int) *Mailbox {
	if depth <= 0 {
		depth = 16
	}
	return &Mailbox{
		pending: make(chan envelope, depth),
		timeout: DefaultMailboxTimeout,
	}
}

// HandleCommand queues the command for the event loop and waits for its
// response. It implements CommandHandler.
func (m *Mailbox) HandleCommand(cmd Command) Response {
	env := envelope{cmd: cmd, reply: make(chan Response, 1)}
	select {
	case m.pending <- env:
	case <-time.After(m.timeout):
		return Failf("event loop busy, command dropped")
	}
	select {
	case resp := <-env.reply:
		return resp
	case <-time.After(m.timeout):
		return Failf("event loop did not answer in time")
	}
}

// Drain runs every queued command through apply. Called once per tick
// from the event loop.
func (m *Mailbox) Drain(apply func(Command) Response) {
	for {
		select {
		case env := <-m.pending:
			env.reply <- apply(env.cmd)
		default:
			return
		}
	}
}
