package session

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeKiller struct {
	sessions []string
	listErr  error
	fail     map[string]bool
	killed   []string
	attempts []string
}

func (f *fakeKiller) ListSessions(ctx context.Context) ([]string, error) {
	return f.sessions, f.listErr
}

func (f *fakeKiller) KillSession(ctx context.Context, name string) error {
	f.attempts = append(f.attempts, name)
	if f.fail[name] {
		return errors.New("can't find session")
	}
	f.killed = append(f.killed, name)
	return nil
}

func TestCleanup_KillsOnlyPrefixed(t *testing.T) {
	mux := &fakeKiller{sessions: []string{"vnet-a", "vnet-b", "other", "vnetwork", "vnet"}}
	c := NewCleaner(mux, "vnet-")

	report, err := c.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if want := []string{"vnet-a", "vnet-b"}; !reflect.DeepEqual(mux.killed, want) {
		t.Errorf("killed = %q, want %q", mux.killed, want)
	}
	if !reflect.DeepEqual(report.Killed, mux.killed) || len(report.Failed) != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestCleanup_FailureDoesNotStopOthers(t *testing.T) {
	mux := &fakeKiller{
		sessions: []string{"vnet-a", "vnet-b", "other"},
		fail:     map[string]bool{"vnet-a": true},
	}
	c := NewCleaner(mux, "vnet-")

	report, err := c.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup() error = %v, want per-session failures collected", err)
	}
	if want := []string{"vnet-a", "vnet-b"}; !reflect.DeepEqual(mux.attempts, want) {
		t.Errorf("attempts = %q, want %q", mux.attempts, want)
	}
	if !reflect.DeepEqual(report.Killed, []string{"vnet-b"}) {
		t.Errorf("report.Killed = %q, want [vnet-b]", report.Killed)
	}
	if len(report.Failed) != 1 || report.Failed[0].Session != "vnet-a" || report.Failed[0].Err == nil {
		t.Errorf("report.Failed = %+v", report.Failed)
	}
	if report.Matched() != 2 {
		t.Errorf("Matched() = %d, want 2", report.Matched())
	}
}

func TestCleanup_NoMatches(t *testing.T) {
	for _, sessions := range [][]string{nil, {"work", "play"}} {
		mux := &fakeKiller{sessions: sessions}
		report, err := NewCleaner(mux, "vnet-").Cleanup(context.Background())
		if err != nil || report.Matched() != 0 || len(mux.attempts) != 0 {
			t.Errorf("Cleanup() over %q = (%+v, %v)", sessions, report, err)
		}
	}
}

func TestCleanup_ListError(t *testing.T) {
	mux := &fakeKiller{listErr: errors.New("permission denied")}
	if _, err := NewCleaner(mux, "vnet-").Cleanup(context.Background()); err == nil {
		t.Error("Cleanup() error = nil, want list error")
	}
}

func TestMatching(t *testing.T) {
	got := Matching([]string{"vnet-b", "vnet", "x-vnet-a", "vnet-a"}, "vnet-")
	if want := []string{"vnet-b", "vnet-a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Matching() = %q, want %q", got, want)
	}
	if got := Matching(nil, "vnet-"); got != nil {
		t.Errorf("Matching(nil) = %q, want nil", got)
	}
}
