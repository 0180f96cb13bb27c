package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgerror"
)

func errCode(t *testing.T, err error) pkgerror.Code {
	t.Helper()

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected pkgerror.Error, got %T (%v)", err, err)
	}
	return perr.Code()
}

func TestInMemoryStore_Sessions(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		s := NewInMemoryStore()

		if err := s.CreateSession(ctx, entity.Session{ID: "s1", CreatedAt: 10}); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}

		sess, metas, err := s.GetSession(ctx, "s1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if sess.ID != "s1" || sess.CreatedAt != 10 {
			t.Errorf("GetSession() session = %+v", sess)
		}
		if len(metas) != 0 {
			t.Errorf("GetSession() metas = %d, want 0", len(metas))
		}
	})

	t.Run("duplicate create conflicts", func(t *testing.T) {
		s := NewInMemoryStore()

		if err := s.CreateSession(ctx, entity.Session{ID: "s1"}); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}

		err := s.CreateSession(ctx, entity.Session{ID: "s1"})
		if errCode(t, err) != pkgerror.CodeConflict {
			t.Errorf("CreateSession() dup error = %v, want conflict", err)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		s := NewInMemoryStore()

		_, _, err := s.GetSession(ctx, "nope")
		if !errors.Is(err, pkgerror.ErrNotFound) {
			t.Errorf("GetSession() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete removes session and uploads", func(t *testing.T) {
		s := NewInMemoryStore()

		if err := s.CreateSession(ctx, entity.Session{ID: "s1"}); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
		if err := s.CreateUpload(ctx, entity.UploadMeta{ID: "u1", SessionID: "s1"}); err != nil {
			t.Fatalf("CreateUpload() error = %v", err)
		}

		if err := s.DeleteSession(ctx, "s1"); err != nil {
			t.Fatalf("DeleteSession() error = %v", err)
		}

		if _, _, err := s.GetSession(ctx, "s1"); !errors.Is(err, pkgerror.ErrNotFound) {
			t.Errorf("GetSession() after delete error = %v, want ErrNotFound", err)
		}
		if _, _, err := s.GetUpload(ctx, "s1", "u1"); !errors.Is(err, pkgerror.ErrNotFound) {
			t.Errorf("GetUpload() after delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		s := NewInMemoryStore()

		if err := s.DeleteSession(ctx, "nope"); !errors.Is(err, pkgerror.ErrNotFound) {
			t.Errorf("DeleteSession() error = %v, want ErrNotFound", err)
		}
	})
}

func TestInMemoryStore_Uploads(t *testing.T) {
	ctx := context.Background()

	newSession := func(t *testing.T) *InMemoryStore {
		t.Helper()
		s := NewInMemoryStore()
		if err := s.CreateSession(ctx, entity.Session{ID: "s1"}); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
		return s
	}

	t.Run("create requires session", func(t *testing.T) {
		s := NewInMemoryStore()

		err := s.CreateUpload(ctx, entity.UploadMeta{ID: "u1", SessionID: "ghost"})
		if !errors.Is(err, pkgerror.ErrNotFound) {
			t.Errorf("CreateUpload() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("duplicate create conflicts", func(t *testing.T) {
		s := newSession(t)

		if err := s.CreateUpload(ctx, entity.UploadMeta{ID: "u1", SessionID: "s1"}); err != nil {
			t.Fatalf("CreateUpload() error = %v", err)
		}

		err := s.CreateUpload(ctx, entity.UploadMeta{ID: "u1", SessionID: "s1"})
		if errCode(t, err) != pkgerror.CodeConflict {
			t.Errorf("CreateUpload() dup error = %v, want conflict", err)
		}
	})

	t.Run("update meta", func(t *testing.T) {
		s := newSession(t)

		if err := s.CreateUpload(ctx, entity.UploadMeta{ID: "u1", SessionID: "s1", Status: entity.UploadStatusQueued}); err != nil {
			t.Fatalf("CreateUpload() error = %v", err)
		}

		err := s.UpdateMeta(ctx, "s1", "u1", func(meta *entity.UploadMeta) {
			meta.Status = entity.UploadStatusProcessing
			meta.RowCount = 42
		})
		if err != nil {
			t.Fatalf("UpdateMeta() error = %v", err)
		}

		meta, _, err := s.GetUpload(ctx, "s1", "u1")
		if err != nil {
			t.Fatalf("GetUpload() error = %v", err)
		}
		if meta.Status != entity.UploadStatusProcessing || meta.RowCount != 42 {
			t.Errorf("GetUpload() meta = %+v", meta)
		}
	})

	t.Run("save results write once", func(t *testing.T) {
		s := newSession(t)

		if err := s.CreateUpload(ctx, entity.UploadMeta{ID: "u1", SessionID: "s1"}); err != nil {
			t.Fatalf("CreateUpload() error = %v", err)
		}

		columns := []entity.ColumnDescriptor{{Name: "event_id", Type: entity.ColumnString}}
		records := []entity.Record{{Fields: map[string]string{"event_id": "x"}}}

		if err := s.SaveResults(ctx, "s1", "u1", columns, records); err != nil {
			t.Fatalf("SaveResults() error = %v", err)
		}

		err := s.SaveResults(ctx, "s1", "u1", nil, nil)
		if errCode(t, err) != pkgerror.CodeConflict {
			t.Errorf("SaveResults() second call error = %v, want conflict", err)
		}

		_, got, err := s.GetUpload(ctx, "s1", "u1")
		if err != nil {
			t.Fatalf("GetUpload() error = %v", err)
		}
		if len(got) != 1 || got[0].Name != "event_id" {
			t.Errorf("GetUpload() columns = %+v", got)
		}

		_, _, recs, err := s.GetRecords(ctx, "s1", "u1")
		if err != nil {
			t.Fatalf("GetRecords() error = %v", err)
		}
		if len(recs) != 1 || recs[0].Fields["event_id"] != "x" {
			t.Errorf("GetRecords() records = %+v", recs)
		}
	})

	t.Run("metas ordered by upload time", func(t *testing.T) {
		s := newSession(t)

		for i, id := range []string{"u3", "u1", "u2"} {
			meta := entity.UploadMeta{ID: id, SessionID: "s1", UploadedAt: int64(100 - i*10)}
			if err := s.CreateUpload(ctx, meta); err != nil {
				t.Fatalf("CreateUpload(%s) error = %v", id, err)
			}
		}

		_, metas, err := s.GetSession(ctx, "s1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}

		want := []string{"u2", "u1", "u3"}
		for i, meta := range metas {
			if meta.ID != want[i] {
				t.Errorf("metas[%d].ID = %s, want %s", i, meta.ID, want[i])
			}
		}
	})
}

func TestInMemoryStore_ActiveUpload(t *testing.T) {
	ctx := context.Background()

	s := NewInMemoryStore()
	if err := s.CreateSession(ctx, entity.Session{ID: "s1"}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if err := s.CreateUpload(ctx, entity.UploadMeta{ID: "u1", SessionID: "s1"}); err != nil {
		t.Fatalf("CreateUpload() error = %v", err)
	}

	t.Run("unknown upload", func(t *testing.T) {
		if err := s.SetActiveUpload(ctx, "s1", "ghost"); !errors.Is(err, pkgerror.ErrNotFound) {
			t.Errorf("SetActiveUpload() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set and clear", func(t *testing.T) {
		if err := s.SetActiveUpload(ctx, "s1", "u1"); err != nil {
			t.Fatalf("SetActiveUpload() error = %v", err)
		}

		sess, _, err := s.GetSession(ctx, "s1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if sess.ActiveUploadID != "u1" {
			t.Errorf("ActiveUploadID = %s, want u1", sess.ActiveUploadID)
		}

		if err := s.SetActiveUpload(ctx, "s1", ""); err != nil {
			t.Fatalf("SetActiveUpload() clear error = %v", err)
		}

		sess, _, err = s.GetSession(ctx, "s1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if sess.ActiveUploadID != "" {
			t.Errorf("ActiveUploadID = %s, want empty", sess.ActiveUploadID)
		}
	})
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()

	s := NewInMemoryStore()
	if err := s.CreateSession(ctx, entity.Session{ID: "s1"}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			id := fmt.Sprintf("u%d", n)
			if err := s.CreateUpload(ctx, entity.UploadMeta{ID: id, SessionID: "s1"}); err != nil {
				t.Errorf("CreateUpload(%s) error = %v", id, err)
				return
			}
			if err := s.SaveResults(ctx, "s1", id, nil, nil); err != nil {
				t.Errorf("SaveResults(%s) error = %v", id, err)
			}
			if _, _, err := s.GetUpload(ctx, "s1", id); err != nil {
				t.Errorf("GetUpload(%s) error = %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	_, metas, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if len(metas) != 50 {
		t.Errorf("GetSession() metas = %d, want 50", len(metas))
	}
}
