package redis

import (
	"testing"
	"time"
)

func TestCacheKeys(t *testing.T) {
	day := time.Date(2026, 5, 4, 23, 0, 0, 0, time.UTC)

	cases := []struct {
		got, want string
	}{
		{CategoryIDKey("data"), "category:id:data"},
		{RunReportKey("ingest", 2), "report:ingest:batch:2"},
		{RunReportKey("maintenance", 0), "report:maintenance:batch:0"},
		{BatchCounterKey("ingest", day), "runs:ingest:2026-05-04"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("key = %q, want %q", c.got, c.want)
		}
	}
}
