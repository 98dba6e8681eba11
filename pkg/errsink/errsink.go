// Package errsink collects human-readable usage errors for later display.
package errsink

// Sink receives error messages. Validators register at most one message per
// failure and signal the failure itself through their return value.
type Sink interface {
	Register(message string)
}

// Collector is an append-only Sink that keeps messages in registration order.
// It is not safe for concurrent use.
type Collector struct {
	messages []string
}

// Register appends a message.
func (c *Collector) Register(message string) {
	c.messages = append(c.messages, message)
}

// Messages returns a copy of the registered messages.
func (c *Collector) Messages() []string {
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of registered messages.
func (c *Collector) Len() int {
	return len(c.messages)
}

// Empty reports whether nothing has been registered.
func (c *Collector) Empty() bool {
	return len(c.messages) == 0
}

// Reset discards all messages.
func (c *Collector) Reset() {
	c.messages = nil
}

// Discard is a Sink that drops every message.
var Discard Sink = discard{}

type discard struct{}

func (discard) Register(string) {}
