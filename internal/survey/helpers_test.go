package survey

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/internal/storage"
	"github.com/naveenspark/nudge/pkg/domain"
)

// 2026-10-14 09:00 local to the fake clock.
var testEpoch = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

const testToday = "2026-10-14"

func newTestState(t *testing.T) (*State, *storage.MemoryKV, *clock.Fake) {
	t.Helper()
	kv := storage.NewMemoryKV()
	c := clock.NewFake(testEpoch)
	return NewState(kv, c, zerolog.Nop()), kv, c
}

func seedStatus(t *testing.T, kv storage.KV, raw string) {
	t.Helper()
	if err := kv.Set(context.Background(), StatusKey, []byte(raw)); err != nil {
		t.Fatalf("seeding status: %v", err)
	}
}

func mustWrite(t *testing.T, s *State, p domain.SurveyPatch) {
	t.Helper()
	if err := s.Write(p); err != nil {
		t.Fatalf("Write: %v", err)
	}
}
