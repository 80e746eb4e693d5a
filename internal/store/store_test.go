package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ashureev/draftlab/internal/domain"
)

func twoFloorBlueprint() *domain.Blueprint {
	return &domain.Blueprint{
		BuildingInfo: domain.BuildingInfo{Type: "office_building", TotalArea: 800, Floors: 2},
		FloorPlans: []domain.FloorPlan{
			{FloorNumber: 1, Area: 400},
			{FloorNumber: 2, Area: 400},
		},
	}
}

func TestAppendCreatesSessionAndAssignsVersions(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(0)

	first, err := s.Append("sess-1", twoFloorBlueprint(), "initial requirements")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if first.Version != 1 {
		t.Fatalf("expected version 1, got %d", first.Version)
	}

	second, err := s.Append("sess-1", twoFloorBlueprint(), "add a terrace")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if second.Version != 2 {
		t.Fatalf("expected version 2, got %d", second.Version)
	}

	history, err := s.History("sess-1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 iterations, got %d", len(history))
	}
	if history[0].Feedback != "initial requirements" || history[1].Feedback != "add a terrace" {
		t.Fatalf("history out of order: %+v", history)
	}
}

func TestAppendRejectsEmptySessionID(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(0)
	_, err := s.Append("", twoFloorBlueprint(), "initial")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
}

func TestHistoryUnknownSession(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(0)
	if _, err := s.History("ghost"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := s.Current("ghost"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := s.Floor("ghost", 0); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if got := s.Len("ghost"); got != 0 {
		t.Fatalf("expected length 0 for unknown session, got %d", got)
	}
}

func TestCurrentReturnsLatest(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(0)
	bp1 := twoFloorBlueprint()
	bp2 := twoFloorBlueprint()
	bp2.FloorPlans = bp2.FloorPlans[:1]

	if _, err := s.Append("sess-2", bp1, "initial"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := s.Append("sess-2", bp2, "drop a floor"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	cur, version, err := s.Current("sess-2")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}
	if len(cur.FloorPlans) != 1 {
		t.Fatalf("expected the latest blueprint, got %d floors", len(cur.FloorPlans))
	}
}

func TestFloorBounds(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(0)
	if _, err := s.Append("sess-3", twoFloorBlueprint(), "initial"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	fp, err := s.Floor("sess-3", 0)
	if err != nil {
		t.Fatalf("Floor(0) failed: %v", err)
	}
	if fp.FloorNumber != 1 {
		t.Fatalf("expected floor number 1, got %d", fp.FloorNumber)
	}

	if _, err := s.Floor("sess-3", 2); !errors.Is(err, domain.ErrFloorOutOfRange) {
		t.Fatalf("expected ErrFloorOutOfRange for index 2, got %v", err)
	}
	if _, err := s.Floor("sess-3", -1); !errors.Is(err, domain.ErrFloorOutOfRange) {
		t.Fatalf("expected ErrFloorOutOfRange for index -1, got %v", err)
	}

	if got := s.Len("sess-3"); got != 1 {
		t.Fatalf("Floor must not mutate history, length went to %d", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(2)
	if _, err := s.Append("sess-4", twoFloorBlueprint(), "one"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := s.Append("sess-4", twoFloorBlueprint(), "two"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := s.Append("sess-4", twoFloorBlueprint(), "three"); !errors.Is(err, domain.ErrHistoryLimit) {
		t.Fatalf("expected ErrHistoryLimit, got %v", err)
	}
	if got := s.Len("sess-4"); got != 2 {
		t.Fatalf("expected history to stay at 2, got %d", got)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(0)
	if _, err := s.Append("sess-5", twoFloorBlueprint(), "initial"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	history, err := s.History("sess-5")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	history[0].Feedback = "tampered"

	fresh, err := s.History("sess-5")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if fresh[0].Feedback != "initial" {
		t.Fatal("mutating a returned history slice must not affect the store")
	}
}

func TestConcurrentAppends(t *testing.T) {
	t.Parallel()

	s := NewSessionStore(0)
	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			shared := "shared"
			own := fmt.Sprintf("own-%d", w)
			for i := 0; i < perWorker; i++ {
				if _, err := s.Append(shared, twoFloorBlueprint(), "concurrent"); err != nil {
					t.Errorf("Append to shared session failed: %v", err)
				}
				if _, err := s.Append(own, twoFloorBlueprint(), "concurrent"); err != nil {
					t.Errorf("Append to own session failed: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	if got := s.Len("shared"); got != workers*perWorker {
		t.Fatalf("expected %d iterations on shared session, got %d", workers*perWorker, got)
	}
	history, err := s.History("shared")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	seen := make(map[int]bool, len(history))
	for _, it := range history {
		if seen[it.Version] {
			t.Fatalf("duplicate version %d in history", it.Version)
		}
		seen[it.Version] = true
	}
}
