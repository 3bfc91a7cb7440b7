package battles

import (
	"testing"
	"time"
)

func TestDayWindow(t *testing.T) {
	now := time.Date(2026, time.March, 15, 13, 45, 30, 0, time.UTC)
	start, end := DayWindow(now)

	wantStart := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("window start = %v, want %v", start, wantStart)
	}

	wantEnd := time.Date(2026, time.March, 15, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !end.Equal(wantEnd) {
		t.Fatalf("window end = %v, want %v", end, wantEnd)
	}

	if !start.Before(now) || !end.After(now) {
		t.Fatalf("window [%v, %v] does not contain %v", start, end, now)
	}
}

func TestCountChallengesStartsAtZero(t *testing.T) {
	db := newTestDB(t)
	windowStart, windowEnd := DayWindow(time.Now())

	count, err := CountChallenges(db, 1, RoleEither, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("CountChallenges returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0 without history", count)
	}

	seedChallenger(t, db, 1, true, time.Now())
	count, err = CountChallenges(db, 1, RoleEither, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("CountChallenges returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 after one challenge", count)
	}
}

func TestCountChallengesFiltersByRole(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	windowStart, windowEnd := DayWindow(now)

	const robotID = 7
	seedChallenger(t, db, robotID, true, now)
	seedChallenger(t, db, robotID, true, now)
	seedChallenger(t, db, robotID, false, now)
	// 別ロボットと期間外の履歴は数えない
	seedChallenger(t, db, 99, true, now)
	seedChallenger(t, db, robotID, true, now.Add(-48*time.Hour))

	count, err := CountChallenges(db, robotID, RoleInitiator, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("CountChallenges returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("initiator count = %d, want 2", count)
	}

	count, err = CountChallenges(db, robotID, RoleOpponent, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("CountChallenges returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("opponent count = %d, want 1", count)
	}

	count, err = CountChallenges(db, robotID, RoleEither, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("CountChallenges returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("either count = %d, want 3", count)
	}
}

func TestIsAdmissibleBoundary(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	windowStart, windowEnd := DayWindow(now)

	const robotID = 1
	const maxAllowed = 5

	for i := 0; i < maxAllowed-1; i++ {
		seedChallenger(t, db, robotID, true, now)
	}

	// 4戦済みなら5戦目は許可される
	admissible, err := IsAdmissible(db, robotID, RoleInitiator, maxAllowed, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("IsAdmissible returned error: %v", err)
	}
	if !admissible {
		t.Fatalf("expected robot with %d battles to be admissible", maxAllowed-1)
	}

	// 上限に達したら許可されない
	seedChallenger(t, db, robotID, true, now)
	admissible, err = IsAdmissible(db, robotID, RoleInitiator, maxAllowed, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("IsAdmissible returned error: %v", err)
	}
	if admissible {
		t.Fatalf("expected robot with %d battles to be rejected", maxAllowed)
	}
}
