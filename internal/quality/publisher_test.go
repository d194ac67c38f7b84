package quality

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/atrbyg24/nba-dashboard/internal/career"
)

func TestNilPublisher(t *testing.T) {
	p, err := NewPublisher("")
	if err != nil || p != nil {
		t.Fatalf("NewPublisher(\"\") = %v, %v; want nil, nil", p, err)
	}
	anomalies := []career.Anomaly{{Kind: career.MalformedSeasonGroup, Season: "1999-00"}}
	if err := p.Publish(context.Background(), 1, anomalies); err != nil {
		t.Errorf("Publish on nil publisher: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close on nil publisher: %v", err)
	}
}

func TestNewPublisher_BadURL(t *testing.T) {
	if _, err := NewPublisher("not-a-redis-url"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewEvent(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	a := career.Anomaly{Kind: career.DuplicateTotal, Season: "2021-22", Detail: "2 TOT rows"}

	ev := newEvent(201142, a, ts)
	if _, err := uuid.Parse(ev.ID); err != nil {
		t.Errorf("event id %q is not a uuid: %v", ev.ID, err)
	}
	if ev.Timestamp.Location() != time.UTC || !ev.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v", ev.Timestamp)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	json.Unmarshal(data, &decoded)
	for _, key := range []string{"id", "player_id", "kind", "season", "detail", "ts"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("payload missing %q: %s", key, data)
		}
	}
	if decoded["kind"] != "duplicate_total" {
		t.Errorf("kind = %v", decoded["kind"])
	}

	if other := newEvent(201142, a, ts); other.ID == ev.ID {
		t.Error("event ids should be unique")
	}
}
