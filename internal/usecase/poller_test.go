package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecogrid/internal/domain/models"
)

func TestPollerDeliversSnapshots(t *testing.T) {
	source := &fakeSource{primaryErr: errors.New("down")}
	a := newTestAcquisition(t, source, &fakeCache{})

	p := NewPoller(a, time.Hour, testLogger(t))
	got := make(chan *models.GridSnapshot, 1)
	p.Subscribe(func(snap *models.GridSnapshot) {
		select {
		case got <- snap:
		default:
		}
	})

	p.Start(context.Background())
	defer p.Stop()

	select {
	case snap := <-got:
		if snap.DataSource != models.SourceSynthetic {
			t.Fatalf("source = %s", snap.DataSource)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no snapshot delivered on start")
	}
}

func TestPollerStopIdempotent(t *testing.T) {
	a := newTestAcquisition(t, &fakeSource{}, &fakeCache{})
	p := NewPoller(a, time.Hour, testLogger(t))

	p.Start(context.Background())
	p.Stop()
	p.Stop()
}

func TestPollerStopWithoutStart(t *testing.T) {
	a := newTestAcquisition(t, &fakeSource{}, &fakeCache{})
	p := NewPoller(a, time.Hour, testLogger(t))
	p.Stop()
}

func TestPollerRestartAfterStop(t *testing.T) {
	a := newTestAcquisition(t, &fakeSource{}, &fakeCache{})
	p := NewPoller(a, time.Hour, testLogger(t))

	// An early Stop must not consume the poller's ability to run later.
	p.Stop()

	got := make(chan *models.GridSnapshot, 1)
	p.Subscribe(func(snap *models.GridSnapshot) {
		select {
		case got <- snap:
		default:
		}
	})

	p.Start(context.Background())
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not run after a preceding Stop")
	}
	p.Stop()
}
