package mqtt

import "testing"

func msg(b byte) message {
	return message{topic: "t", payload: []byte{b}}
}

func TestBacklogEmpty(t *testing.T) {
	b := newBacklog(10)
	if got := b.take(); got != nil {
		t.Errorf("expected nil from empty backlog, got %d items", len(got))
	}
}

func TestBacklogOrder(t *testing.T) {
	b := newBacklog(10)
	for i := 0; i < 5; i++ {
		b.add(msg(byte(i)))
	}
	if b.len() != 5 {
		t.Fatalf("expected len 5, got %d", b.len())
	}
	got := b.take()
	for i, m := range got {
		if m.payload[0] != byte(i) {
			t.Errorf("item %d: got %d", i, m.payload[0])
		}
	}
	if b.len() != 0 || b.take() != nil {
		t.Error("take should empty the backlog")
	}
}

func TestBacklogDropsOldest(t *testing.T) {
	b := newBacklog(5)
	for i := 0; i < 8; i++ {
		b.add(msg(byte(i)))
	}
	if b.dropped != 3 {
		t.Errorf("expected 3 dropped, got %d", b.dropped)
	}
	got := b.take()
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	for i, m := range got {
		if want := byte(i + 3); m.payload[0] != want {
			t.Errorf("item %d: got %d, want %d", i, m.payload[0], want)
		}
	}
	if b.dropped != 0 {
		t.Error("take should reset the drop count")
	}
}

func TestBacklogWrapsAcrossCycles(t *testing.T) {
	b := newBacklog(4)
	for i := 0; i < 3; i++ {
		b.add(msg(byte(i)))
	}
	b.take()
	for i := 10; i < 14; i++ {
		b.add(msg(byte(i)))
	}
	got := b.take()
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got))
	}
	for i, m := range got {
		if want := byte(10 + i); m.payload[0] != want {
			t.Errorf("item %d: got %d, want %d", i, m.payload[0], want)
		}
	}
}

func TestBacklogKeepsFields(t *testing.T) {
	b := newBacklog(0)
	b.add(message{topic: TopicSystem, payload: []byte(`{}`), qos: 1, retained: true})
	got := b.take()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	m := got[0]
	if m.topic != TopicSystem || string(m.payload) != `{}` || m.qos != 1 || !m.retained {
		t.Errorf("fields not preserved: %+v", m)
	}
}
