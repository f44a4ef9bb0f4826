// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/framegrace/limn/geom"
)

func TestParseEventKind(t *testing.T) {
	cases := []struct {
		in   string
		want EventKind
		ok   bool
	}{
		{"create", EventCreate, true},
		{"destroy", EventDestroy, true},
		{"show", EventShow, true},
		{"hide", EventHide, true},
		{"foreground", EventForeground, true},
		{"location_change", EventLocationChange, true},
		{"  Foreground ", EventForeground, true},
		{"HIDE", EventHide, true},
		{"unknown", EventUnknown, false},
		{"resize", EventUnknown, false},
		{"", EventUnknown, false},
	}
	for _, tc := range cases {
		got, ok := ParseEventKind(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseEventKind(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEventKindStringFallback(t *testing.T) {
	if got := EventKind(42).String(); got != "event(42)" {
		t.Errorf("String() = %q, want event(42)", got)
	}
}

func TestNotificationWireNames(t *testing.T) {
	n := Notification{
		Event:  EventLocationChange,
		Window: 71,
		Object: ObjectWindow,
		Rect:   geom.Rect{Left: 10, Top: 20, Right: 110, Bottom: 80},
		Time:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"event":"location_change"`) {
		t.Fatalf("wire form lost the stable event name: %s", data)
	}

	var back Notification
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(n, back); diff != "" {
		t.Errorf("notification changed across the wire (-want +got):\n%s", diff)
	}
}

func TestEventKindUnmarshalRejectsUnknown(t *testing.T) {
	var k EventKind
	if err := json.Unmarshal([]byte(`"explode"`), &k); err == nil {
		t.Fatal("expected error for unknown event name")
	}
	if err := json.Unmarshal([]byte(`17`), &k); err == nil {
		t.Fatal("expected error for non-string event value")
	}
}
