package drafts

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeKV struct {
	data map[string]string
	fail bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (kv *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	if kv.fail {
		return "", false, errors.New("storage unavailable")
	}
	v, ok := kv.data[key]
	return v, ok, nil
}

func (kv *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if kv.fail {
		return errors.New("storage unavailable")
	}
	kv.data[key] = value
	return nil
}

func (kv *fakeKV) Del(ctx context.Context, keys ...string) error {
	if kv.fail {
		return errors.New("storage unavailable")
	}
	for _, k := range keys {
		delete(kv.data, k)
	}
	return nil
}

func TestStore_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()

	t.Run("one user never sees another user's draft", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		s.Save(ctx, Authenticated(1), map[string]any{"story": "mine"})

		if _, ok := s.Load(ctx, Authenticated(2)); ok {
			t.Error("user 2 must not load user 1's draft")
		}
		if payload, ok := s.Load(ctx, Authenticated(1)); !ok || payload["story"] != "mine" {
			t.Errorf("owner load failed: %v %v", payload, ok)
		}
	})

	t.Run("anonymous never sees a user draft and vice versa", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		s.Save(ctx, Authenticated(1), map[string]any{"k": "user"})
		s.Save(ctx, Anonymous("dev-1"), map[string]any{"k": "anon"})

		if _, ok := s.Load(ctx, Anonymous("dev-2")); ok {
			t.Error("a different device must not see another device's draft")
		}
		if p, ok := s.Load(ctx, Anonymous("dev-1")); !ok || p["k"] != "anon" {
			t.Errorf("anon load failed: %v %v", p, ok)
		}
		if p, ok := s.Load(ctx, Authenticated(1)); !ok || p["k"] != "user" {
			t.Errorf("user load failed: %v %v", p, ok)
		}
	})

	t.Run("a tampered scope tag is rejected", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		// record written under user 7's key but tagged as someone else
		kv.data["draft:7"] = `{"metadata":{"scope":"user","owner_user_id":8,"updated_at":"2025-01-01T00:00:00Z"},"payload":{"x":1}}`
		if _, ok := s.Load(ctx, Authenticated(7)); ok {
			t.Error("mismatched owner_user_id must read as absent")
		}

		kv.data["draft:anon:dev-1"] = `{"metadata":{"scope":"user","owner_user_id":7,"updated_at":"2025-01-01T00:00:00Z"},"payload":{"x":1}}`
		if _, ok := s.Load(ctx, Anonymous("dev-1")); ok {
			t.Error("user-scoped record must not surface on an anonymous read")
		}
	})

	t.Run("malformed json reads as absent", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		kv.data["draft:1"] = "{not json"
		if _, ok := s.Load(ctx, Authenticated(1)); ok {
			t.Error("malformed record must read as absent, not raise")
		}
	})
}

func TestStore_SaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := NewStore(kv)

	s.Save(ctx, Authenticated(1), map[string]any{"a": "1", "b": "2"})
	s.Save(ctx, Authenticated(1), map[string]any{"c": "3"})

	payload, ok := s.Load(ctx, Authenticated(1))
	if !ok {
		t.Fatal("draft missing")
	}
	if _, stale := payload["a"]; stale {
		t.Error("save must replace, not merge")
	}
	if payload["c"] != "3" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestStore_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the anonymous draft and deletes the source", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		s.Save(ctx, Anonymous("dev-1"), map[string]any{"story": "draft"})

		if !s.TransferAnonymousDraft(ctx, "dev-1", 5) {
			t.Fatal("transfer should succeed")
		}
		if p, ok := s.Load(ctx, Authenticated(5)); !ok || p["story"] != "draft" {
			t.Errorf("user copy missing: %v %v", p, ok)
		}
		if s.HasAnonymousDraft(ctx, "dev-1") {
			t.Error("anonymous copy must be deleted")
		}
		// a second transfer has nothing left to move
		if s.TransferAnonymousDraft(ctx, "dev-1", 5) {
			t.Error("second transfer must report false")
		}
	})

	t.Run("reports false when there is nothing to transfer", func(t *testing.T) {
		s := NewStore(newFakeKV())
		if s.TransferAnonymousDraft(ctx, "dev-none", 5) {
			t.Error("expected false for a device with no draft")
		}
	})
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("clear removes only the owner's draft", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		s.Save(ctx, Authenticated(1), map[string]any{"x": 1})
		s.Save(ctx, Authenticated(2), map[string]any{"x": 2})

		s.Clear(ctx, Authenticated(1))
		if _, ok := s.Load(ctx, Authenticated(1)); ok {
			t.Error("cleared draft still present")
		}
		if _, ok := s.Load(ctx, Authenticated(2)); !ok {
			t.Error("other owner's draft must survive")
		}
	})

	t.Run("clear-all sweeps only the given owners", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		s.Save(ctx, Authenticated(1), map[string]any{"x": 1})
		s.Save(ctx, Authenticated(2), map[string]any{"x": 2})
		s.Save(ctx, Anonymous("dev-1"), map[string]any{"x": 3})

		s.ClearAll(ctx, Authenticated(1), Anonymous("dev-1"))
		if _, ok := s.Load(ctx, Authenticated(1)); ok {
			t.Error("user draft survived clear-all")
		}
		if s.HasAnonymousDraft(ctx, "dev-1") {
			t.Error("anon draft survived clear-all")
		}
		if _, ok := s.Load(ctx, Authenticated(2)); !ok {
			t.Error("another user's draft must survive a sign-out sweep")
		}
	})

	t.Run("clear-all with no owners is a no-op", func(t *testing.T) {
		kv := newFakeKV()
		s := NewStore(kv)
		s.Save(ctx, Authenticated(1), map[string]any{"x": 1})

		s.ClearAll(ctx)
		if _, ok := s.Load(ctx, Authenticated(1)); !ok {
			t.Error("sweep without an identity must delete nothing")
		}
	})
}

func TestStore_BestEffort(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.fail = true
	s := NewStore(kv)

	// none of these may panic or error out to the caller
	s.Save(ctx, Authenticated(1), map[string]any{"x": 1})
	if _, ok := s.Load(ctx, Authenticated(1)); ok {
		t.Error("unavailable storage must read as absent")
	}
	s.Clear(ctx, Authenticated(1))
	s.ClearAll(ctx, Authenticated(1))
}
