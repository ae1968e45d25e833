package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(storeWriteFailures)
	RecordStoreWriteFailure()
	if got := testutil.ToFloat64(storeWriteFailures); got != before+1 {
		t.Errorf("write failures: got %v, want %v", got, before+1)
	}

	RecordAchievementAwarded("first_workout")
	if got := testutil.ToFloat64(achievementsAwarded.WithLabelValues("first_workout")); got < 1 {
		t.Errorf("expected first_workout counter >= 1, got %v", got)
	}

	SetStoreBytesUsed(1234)
	if got := testutil.ToFloat64(storeBytesUsed); got != 1234 {
		t.Errorf("bytes used: got %v, want 1234", got)
	}
}
