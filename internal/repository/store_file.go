package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"prodtrack/internal/domain/user"
)

// FileUserStore keeps every user record in one pretty-printed JSON document.
// Each Update reloads the document, applies the mutation and atomically
// rewrites the whole file. Updates inside one process are serialized; several
// processes writing the same file can still lose updates.
//
// A record that cannot be decoded, or that loses a case collision on its
// email key, is held back: it is invisible to callers but written back
// byte for byte on every save.
type FileUserStore struct {
	path string
	mu   sync.Mutex
	log  *zap.SugaredLogger
}

func NewFileUserStore(path string) (*FileUserStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileUserStore{path: path, log: zap.NewNop().Sugar()}, nil
}

func (s *FileUserStore) WithLogger(log *zap.SugaredLogger) *FileUserStore {
	s.log = log
	return s
}

func (s *FileUserStore) View(ctx context.Context, fn func(users user.Users) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, _, err := s.load()
	if err != nil {
		return err
	}
	return fn(users)
}

// Update runs fn over a freshly loaded store and saves the result. Nothing is
// written when fn returns an error.
func (s *FileUserStore) Update(ctx context.Context, fn func(users user.Users) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, held, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(users); err != nil {
		return err
	}
	return s.save(users, held)
}

func (s *FileUserStore) load() (user.Users, map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return user.Users{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read store: %w", err)
	}
	if len(raw) == 0 {
		return user.Users{}, nil, nil
	}

	records := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil, fmt.Errorf("decode store: %w", err)
	}

	held := map[string]json.RawMessage{}
	decoded := make(map[string]*user.User, len(records))
	for key, record := range records {
		var u *user.User
		if err := json.Unmarshal(record, &u); err != nil {
			s.log.Errorf("store: holding back undecodable record %q: %v", key, err)
			held[key] = record
			continue
		}
		decoded[key] = u
	}

	users, shadowed := rekey(decoded)
	for _, key := range shadowed {
		s.log.Warnf("store: record %q collides with %q, holding it back", key, user.NormalizeEmail(key))
		held[key] = records[key]
	}
	return users, held, nil
}

func (s *FileUserStore) save(users user.Users, held map[string]json.RawMessage) error {
	doc := make(map[string]json.RawMessage, len(users)+len(held))
	for key, record := range held {
		doc[key] = record
	}
	for email, u := range users {
		record, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("encode user %s: %w", email, err)
		}
		doc[email] = record
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// rekey files each record under its normalized email, fills Email and
// defaults missing fields. When several keys normalize to the same email the
// already-normalized key wins, otherwise the lexically smallest; the other
// keys are returned as shadowed.
func rekey(decoded map[string]*user.User) (user.Users, []string) {
	keys := slices.Sorted(maps.Keys(decoded))
	slices.SortStableFunc(keys, func(a, b string) int {
		return cmp.Compare(rank(a), rank(b))
	})

	users := make(user.Users, len(decoded))
	var shadowed []string
	for _, key := range keys {
		email := user.NormalizeEmail(key)
		if _, taken := users[email]; taken {
			shadowed = append(shadowed, key)
			continue
		}
		u := decoded[key]
		if u == nil {
			u = &user.User{}
		}
		u.Email = email
		u.Normalize()
		users[email] = u
	}
	return users, shadowed
}

func rank(key string) int {
	if key == user.NormalizeEmail(key) {
		return 0
	}
	return 1
}
