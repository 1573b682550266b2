package drafts

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// abandoned wizard state has no value past this
const draftTTL = 30 * 24 * time.Hour

type metadata struct {
	Scope       string    `json:"scope"`
	OwnerUserID int       `json:"owner_user_id,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type envelope struct {
	Metadata metadata       `json:"metadata"`
	Payload  map[string]any `json:"payload"`
}

// Store persists in-progress application wizard state per owner. It is a
// best-effort cache, not a system of record: Save never fails the caller,
// and Load answers "absent" for anything missing, malformed, or owned by
// someone else.
type Store struct {
	kv  KV
	now func() time.Time
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Save writes the owner's draft wholesale, replacing any prior value.
func (s *Store) Save(ctx context.Context, owner Owner, payload map[string]any) {
	env := envelope{
		Metadata: metadata{
			Scope:     owner.scope(),
			UpdatedAt: s.now(),
		},
		Payload: payload,
	}
	if !owner.IsAnonymous() {
		env.Metadata.OwnerUserID = owner.userID
	}

	b, err := json.Marshal(env)
	if err != nil {
		log.Printf("[drafts][save] marshal failed: key=%s err=%v", owner.key(), err)
		return
	}
	if err := s.kv.Set(ctx, owner.key(), string(b), draftTTL); err != nil {
		log.Printf("[drafts][save] write failed: key=%s err=%v", owner.key(), err)
	}
}

// Load returns the owner's draft payload, or false when there is none. A
// record whose metadata does not match the requesting owner is treated as
// absent, never merged or returned.
func (s *Store) Load(ctx context.Context, owner Owner) (map[string]any, bool) {
	raw, ok, err := s.kv.Get(ctx, owner.key())
	if err != nil {
		log.Printf("[drafts][load] read failed: key=%s err=%v", owner.key(), err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, false
	}
	if env.Metadata.Scope != owner.scope() {
		return nil, false
	}
	if !owner.IsAnonymous() && env.Metadata.OwnerUserID != owner.userID {
		return nil, false
	}
	return env.Payload, true
}

func (s *Store) Clear(ctx context.Context, owner Owner) {
	if err := s.kv.Del(ctx, owner.key()); err != nil {
		log.Printf("[drafts][clear] failed: key=%s err=%v", owner.key(), err)
	}
}

// ClearAll deletes every draft belonging to the given owners, used on
// sign-out so a shared device keeps no residual state for the caller. The
// backing store is shared across all users, so the sweep never reaches past
// the identities the caller presented.
func (s *Store) ClearAll(ctx context.Context, owners ...Owner) {
	if len(owners) == 0 {
		return
	}
	keys := make([]string, 0, len(owners))
	for _, o := range owners {
		keys = append(keys, o.key())
	}
	if err := s.kv.Del(ctx, keys...); err != nil {
		log.Printf("[drafts][clear-all] delete failed: %v", err)
	}
}

func (s *Store) HasAnonymousDraft(ctx context.Context, deviceID string) bool {
	_, ok := s.Load(ctx, Anonymous(deviceID))
	return ok
}

// TransferAnonymousDraft moves a device's anonymous draft into the newly
// authenticated identity and deletes the anonymous copy. Returns false when
// there is nothing to transfer.
func (s *Store) TransferAnonymousDraft(ctx context.Context, deviceID string, userID int) bool {
	payload, ok := s.Load(ctx, Anonymous(deviceID))
	if !ok {
		return false
	}
	s.Save(ctx, Authenticated(userID), payload)
	s.Clear(ctx, Anonymous(deviceID))
	return true
}
