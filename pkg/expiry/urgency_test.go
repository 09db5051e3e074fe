package expiry

import (
	"testing"
	"time"
)

func TestUrgencyLabelTable(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	for d := -10; d <= 14; d++ {
		exp := now.AddDate(0, 0, d)
		days, label := ClassifyUrgency(&exp, now)
		if days == nil || *days != d {
			t.Fatalf("d=%d: expected delta %d got %v", d, d, days)
		}
		var want string
		switch {
		case d < 0:
			want = UrgencyExpired
		case d <= 3:
			want = UrgencyCritical
		case d <= 7:
			want = UrgencyWarning
		default:
			want = UrgencySafe
		}
		if label != want {
			t.Fatalf("d=%d: expected %s got %s", d, want, label)
		}
	}
}

func TestUrgencyAbsentDate(t *testing.T) {
	days, label := ClassifyUrgency(nil, time.Now())
	if days != nil || label != UrgencyUnknown {
		t.Fatalf("expected nil/unknown got %v/%s", days, label)
	}
}

func TestUrgencyFloorsTowardEarlierDay(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	// expired an hour ago already counts as -1
	exp := now.Add(-time.Hour)
	days, label := ClassifyUrgency(&exp, now)
	if days == nil || *days != -1 || label != UrgencyExpired {
		t.Fatalf("expected -1/expired got %v/%s", days, label)
	}

	// 23 hours ahead is still day zero
	exp = now.Add(23 * time.Hour)
	days, label = ClassifyUrgency(&exp, now)
	if days == nil || *days != 0 || label != UrgencyCritical {
		t.Fatalf("expected 0/critical got %v/%s", days, label)
	}
}
