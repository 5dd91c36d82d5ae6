package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/pippo/internal/logic"
)

var testTime = time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC)

func TestFormatPayload(t *testing.T) {
	event := logic.Event{
		Timestamp: testTime,
		Type:      logic.EventShortPress,
		From:      logic.ScreenMenu,
		To:        logic.ScreenMenu,
		Selection: 2,
	}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"ui":{"timestamp":"2026-02-02T22:18:12Z","event":"SHORT_PRESS","from":"MENU","to":"MENU","selection":2}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatPayloadOmitsSelectionOutsideMenu(t *testing.T) {
	event := logic.Event{
		Timestamp: testTime,
		Type:      logic.EventLongPress,
		From:      logic.ScreenStatus,
		To:        logic.ScreenHome,
		Selection: -1,
	}
	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := parsed["ui"]["selection"]; ok {
		t.Errorf("selection should be omitted, got %s", payload)
	}
	if parsed["ui"]["event"] != "LONG_PRESS" {
		t.Errorf("event: got %v", parsed["ui"]["event"])
	}
}

func TestFormatPayloadSelectionZeroKept(t *testing.T) {
	payload, _ := FormatPayload(logic.Event{Timestamp: testTime, Type: logic.EventLongPress, From: logic.ScreenHome, To: logic.ScreenMenu})
	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.UI.Selection == nil || *parsed.UI.Selection != 0 {
		t.Errorf("expected selection 0, got %s", payload)
	}
}

func TestFormatPayloadConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	payload, _ := FormatPayload(logic.Event{Timestamp: testTime.In(loc), Type: logic.EventShortPress, Selection: -1})
	var parsed Payload
	json.Unmarshal(payload, &parsed)
	if parsed.UI.Timestamp != "2026-02-02T22:18:12Z" {
		t.Errorf("expected UTC timestamp, got %s", parsed.UI.Timestamp)
	}
}

func TestFormatSystemPayloadExactJSON(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{Timestamp: testTime, Event: "SHUTDOWN", Reason: "SIGTERM"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"system":{"timestamp":"2026-02-02T22:18:12Z","event":"SHUTDOWN","reason":"SIGTERM"}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	payload, _ := FormatSystemPayload(SystemEvent{Timestamp: testTime, Event: "OFFLINE"})
	want := `{"system":{"timestamp":"2026-02-02T22:18:12Z","event":"OFFLINE"}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"snapshot":true}`)
	payload, err := FormatSystemPayload(SystemEvent{Event: "STARTUP", RawPayload: raw})
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload passthrough, got %s", payload)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()
	event := logic.Event{Timestamp: testTime, Type: logic.EventShortPress, From: logic.ScreenMenu, To: logic.ScreenMenu, Selection: 1}

	if err := f.Publish(event); err != nil {
		t.Fatal(err)
	}
	if len(f.Events) != 1 || f.Events[0] != event {
		t.Errorf("expected event recorded, got %+v", f.Events)
	}
	if len(f.Payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(f.Payloads))
	}

	f.PublishSystem(SystemEvent{Timestamp: testTime, Event: "STARTUP"})
	f.PublishSystem(SystemEvent{Timestamp: testTime, Event: "SHUTDOWN"})
	names := f.SystemEventNames()
	if len(names) != 2 || names[0] != "STARTUP" || names[1] != "SHUTDOWN" {
		t.Errorf("unexpected system events %v", names)
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")
	f.PublishSystemError = errors.New("broker down")

	if err := f.Publish(logic.Event{}); err == nil {
		t.Error("expected publish error")
	}
	if err := f.PublishSystem(SystemEvent{}); err == nil {
		t.Error("expected publish system error")
	}
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("failed publishes should not be recorded")
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(logic.Event{})
	f.Close()
	f.Connected = true
	f.PublishError = errors.New("x")

	f.Reset()
	if len(f.Events) != 0 || f.Closed || f.Connected || f.PublishError != nil {
		t.Errorf("reset left state behind: %+v", f)
	}
}

func TestPublishersSatisfyInterfaces(t *testing.T) {
	var _ Publisher = (*FakePublisher)(nil)
	var _ ConnectionStatus = (*FakePublisher)(nil)
	var _ Publisher = (*RealPublisher)(nil)
	var _ ConnectionStatus = (*RealPublisher)(nil)
}
