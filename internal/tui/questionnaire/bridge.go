package questionnaire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mindcheck/internal/predict"
)

// Bridge runs the prediction call in a background goroutine and hands the
// result to the TUI as a tea.Msg, so the event loop keeps drawing while the
// request is pending.
type Bridge struct {
	submitter predict.Submitter
	payload   map[string]string
	msgs      chan tea.Msg
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBridge creates a Bridge that will submit payload once started.
func NewBridge(sub predict.Submitter, payload map[string]string) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		submitter: sub,
		payload:   payload,
		msgs:      make(chan tea.Msg, 1),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Cancel aborts the request.
func (b *Bridge) Cancel() {
	b.cancel()
}

// send delivers a message on the channel, respecting context cancellation
// to prevent deadlocks if the TUI has been shut down.
func (b *Bridge) send(msg tea.Msg) bool {
	select {
	case b.msgs <- msg:
		return true
	case <-b.ctx.Done():
		return false
	}
}

// Start launches the request and returns a tea.Cmd that delivers its
// SubmitDoneMsg.
func (b *Bridge) Start() tea.Cmd {
	go b.run()
	return b.NextMsg()
}

func (b *Bridge) run() {
	defer close(b.msgs)
	defer b.cancel()

	resp, err := b.submitter.Predict(b.ctx, b.payload)
	b.send(SubmitDoneMsg{Resp: resp, Err: err})
}

// NextMsg returns a tea.Cmd that waits for the next message from the channel.
func (b *Bridge) NextMsg() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.msgs
		if !ok {
			return nil
		}
		return msg
	}
}
