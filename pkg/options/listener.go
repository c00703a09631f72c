// Package options provides the change-notification contract shared by every
// effect options object.
//
// An options object holds at most one listener, normally the manager that
// renders with it. The listener is not owned: the manager detaches itself on
// teardown, after which notifications are silently dropped.
package options

// Listener receives change notifications from an options object. The aspect
// identifies which tunable changed.
type Listener[A any] interface {
	OptionsChanged(aspect A)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc[A any] func(aspect A)

// OptionsChanged calls f(aspect).
func (f ListenerFunc[A]) OptionsChanged(aspect A) {
	f(aspect)
}

// Notifier holds the current listener of an options object.
//
// Notifier is not safe for concurrent use; options objects follow a
// single-writer discipline on the host's rendering goroutine.
type Notifier[A any] struct {
	listener Listener[A]
}

// SetListener replaces the current listener. Passing nil detaches.
func (n *Notifier[A]) SetListener(l Listener[A]) {
	n.listener = l
}

// Listener returns the current listener, or nil.
func (n *Notifier[A]) Listener() Listener[A] {
	return n.listener
}

// Detach clears the listener if it is l. A listener that was already
// replaced is left alone, so a stale owner cannot detach its successor.
func (n *Notifier[A]) Detach(l Listener[A]) {
	if n.listener == nil || l == nil {
		return
	}
	if sameListener(n.listener, l) {
		n.listener = nil
	}
}

// Notify synchronously calls the listener with aspect.
// Without a listener it does nothing.
func (n *Notifier[A]) Notify(aspect A) {
	if l := n.listener; l != nil {
		l.OptionsChanged(aspect)
	}
}

// sameListener compares listeners by identity. ListenerFunc values are not
// comparable and never match; detach those with SetListener(nil).
func sameListener[A any](a, b Listener[A]) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
