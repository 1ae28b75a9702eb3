// Package notify holds the single transient message shown across the dashboard.
package notify

import (
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/render"
)

// Notifier shows one message at a time and hides it after a delay.
// Each Show replaces the pending dismissal, so an older timer can never hide a newer message.
type Notifier struct {
	mu         sync.Mutex
	after      time.Duration
	message    string
	visible    bool
	timer      *time.Timer
	generation uint64
	onChange   func()
}

// New builds a notifier. onChange runs on the timer goroutine after an
// automatic dismissal; it may be nil.
func New(after time.Duration, onChange func()) *Notifier {
	return &Notifier{after: after, onChange: onChange}
}

func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()
	n.generation++
	gen := n.generation
	n.message = msg
	n.visible = true
	n.timer = time.AfterFunc(n.after, func() { n.expire(gen) })
}

func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()
	n.generation++
	n.visible = false
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message, n.visible
}

func (n *Notifier) View() render.NotificationView {
	msg, visible := n.Current()
	if !visible {
		return render.NotificationView{}
	}
	return render.NotificationView{Visible: true, Message: msg}
}

// Stop cancels any pending dismissal without changing what is shown.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
}

func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.generation || !n.visible {
		n.mu.Unlock()
		return
	}
	n.visible = false
	n.timer = nil
	onChange := n.onChange
	n.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
