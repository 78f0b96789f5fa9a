package queue_test

import (
	"testing"
	"time"

	"github.com/lucasclyra-cmd/normative/internal/queue"
)

func TestBucket(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want queue.Urgency
	}{
		{"fresh", 0, queue.UrgencyNormal},
		{"one day", 24 * time.Hour, queue.UrgencyNormal},
		{"just under warning", 3*24*time.Hour - time.Second, queue.UrgencyNormal},
		{"warning threshold", 3 * 24 * time.Hour, queue.UrgencyWarning},
		{"five days", 5 * 24 * time.Hour, queue.UrgencyWarning},
		{"just under critical", 7*24*time.Hour - time.Second, queue.UrgencyWarning},
		{"critical threshold", 7 * 24 * time.Hour, queue.UrgencyCritical},
		{"two weeks", 14 * 24 * time.Hour, queue.UrgencyCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queue.Bucket(now.Add(-tt.age), now)
			if got != tt.want {
				t.Errorf("Bucket(age %s) = %s, want %s", tt.age, got, tt.want)
			}
		})
	}
}
