package mqtt

import "log"

// message is a serialized publish held for replay after reconnecting.
type message struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog keeps the newest messages published while disconnected, dropping
// the oldest once full. Callers synchronize.
type backlog struct {
	msgs    []message
	start   int
	size    int
	dropped int
}

func newBacklog(capacity int) *backlog {
	if capacity < 1 {
		capacity = 1
	}
	return &backlog{msgs: make([]message, capacity)}
}

func (b *backlog) add(m message) {
	n := len(b.msgs)
	if b.size < n {
		b.msgs[(b.start+b.size)%n] = m
		b.size++
		return
	}
	if b.dropped == 0 {
		log.Printf("mqtt: backlog full (%d messages), dropping oldest", n)
	}
	b.dropped++
	b.msgs[b.start] = m
	b.start = (b.start + 1) % n
}

// take returns the queued messages oldest first and empties the backlog.
func (b *backlog) take() []message {
	if b.size == 0 {
		return nil
	}
	out := make([]message, b.size)
	for i := range out {
		out[i] = b.msgs[(b.start+i)%len(b.msgs)]
	}
	if b.dropped > 0 {
		log.Printf("mqtt: %d messages were dropped while offline", b.dropped)
	}
	b.start, b.size, b.dropped = 0, 0, 0
	return out
}

func (b *backlog) len() int {
	return b.size
}
