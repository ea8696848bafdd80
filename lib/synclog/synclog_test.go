// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package synclog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	t.Cleanup(func() {
		if err := log.Close(); err != nil {
			t.Errorf("closing log: %v", err)
		}
	})
	return log
}

func TestRecordAndRecent(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Millisecond)
	events := []Event{
		{
			DatasetID: "3245875",
			Title:     "Labsphere SRS-99-020 Absolute Reflectance",
			StartedAt: base.Add(-2 * time.Minute),
			Duration:  1500 * time.Millisecond,
			Files:     1,
			Bytes:     2048,
			Outcome:   OutcomeSuccess,
		},
		{
			DatasetID: "3245895",
			Title:     "New Color Specifications for ColorChecker SG and Classic Charts",
			StartedAt: base.Add(-1 * time.Minute),
			Duration:  300 * time.Millisecond,
			Files:     4,
			Outcome:   OutcomeFailure,
			Error:     "transferring \"ColorCheckerSG_After_Nov2014.zip\": status 502",
		},
	}
	for _, event := range events {
		if err := log.Record(ctx, event); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}

	recent, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d events, want 2", len(recent))
	}
	// Newest first.
	if recent[0].DatasetID != "3245895" || recent[1].DatasetID != "3245875" {
		t.Errorf("order: got %s then %s", recent[0].DatasetID, recent[1].DatasetID)
	}
	if recent[0].Outcome != OutcomeFailure || recent[0].Error == "" {
		t.Errorf("failure event not preserved: %+v", recent[0])
	}
	if recent[1].Bytes != 2048 || recent[1].Files != 1 {
		t.Errorf("success event not preserved: %+v", recent[1])
	}
	if !recent[1].StartedAt.Equal(events[0].StartedAt) {
		t.Errorf("started at: got %v, want %v", recent[1].StartedAt, events[0].StartedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		event := Event{
			DatasetID: "3270903",
			Title:     "Corresponding-Colour Datasets",
			StartedAt: time.Now().Add(time.Duration(i) * time.Second),
			Outcome:   OutcomeSuccess,
		}
		if err := log.Record(ctx, event); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}

	recent, err := log.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("got %d events, want 3", len(recent))
	}
}
