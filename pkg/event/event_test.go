package event_test

import (
	"testing"

	"github.com/ananyakrishnan/zaika/pkg/event"
)

func TestFireDeliversInSubscriptionOrder(t *testing.T) {
	var got []string
	event.Listen("test.order_placed", func(payload interface{}) {
		got = append(got, "first:"+payload.(string))
	})
	event.Listen("test.order_placed", func(payload interface{}) {
		got = append(got, "second:"+payload.(string))
	})

	event.Fire("test.order_placed", "abc123")

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	if got[0] != "first:abc123" || got[1] != "second:abc123" {
		t.Fatalf("wrong delivery order: %v", got)
	}
}

func TestFireWithoutListenersIsNoOp(t *testing.T) {
	event.Fire("test.nobody_listens", 42)
}
