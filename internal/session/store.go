package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/angelmondragon/storehub-console/pkg/logger"
)

// Storage key layout. The primary keys are current; the aliases survive from
// earlier releases and stay read-compatible until Migrate folds them in.
const (
	keyToken       = "auth_token"
	keyUser        = "user_data"
	keyStoreSchema = "schema_version"

	currentSchemaVersion = 2
)

var (
	tokenKeys = []string{keyToken, "token", "auth-token"}
	userKeys  = []string{keyUser, "user"}
)

// Store persists the access token and cached user profile in a local
// credentials file. Every operation is best-effort: an unavailable or
// corrupt file reads as an empty session and writes become no-ops, never
// errors. Callers treat absence as unauthenticated.
type Store struct {
	path string
	logg *logger.Logger
}

// NewStore builds a credential store at path. An empty path disables
// persistence entirely.
func NewStore(path string, logg *logger.Logger) *Store {
	return &Store{path: strings.TrimSpace(path), logg: logg}
}

// Token returns the stored access token, consulting the primary key first
// and then the legacy aliases. Empty when absent or unreadable.
func (s *Store) Token() string {
	doc := s.load()
	for _, key := range tokenKeys {
		if v, ok := stringAt(doc, key); ok && v != "" {
			return v
		}
	}
	return ""
}

// User returns the cached profile, or nil when absent or malformed.
func (s *Store) User() *UserProfile {
	doc := s.load()
	for _, key := range userKeys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if profile := parseProfile(raw); profile != nil {
			return profile
		}
	}
	return nil
}

// SetToken writes the token under the primary key and mirrors the legacy
// alias for processes still reading the old layout.
func (s *Store) SetToken(token string) {
	s.update(func(doc map[string]json.RawMessage) {
		encoded, err := json.Marshal(token)
		if err != nil {
			return
		}
		doc[keyToken] = encoded
		doc["token"] = encoded
	})
}

// SetUser caches the profile under the primary key.
func (s *Store) SetUser(profile *UserProfile) {
	s.update(func(doc map[string]json.RawMessage) {
		if profile == nil {
			delete(doc, keyUser)
			return
		}
		encoded, err := json.Marshal(profile)
		if err != nil {
			return
		}
		doc[keyUser] = encoded
	})
}

// Clear removes the token and profile, aliases included.
func (s *Store) Clear() {
	s.update(func(doc map[string]json.RawMessage) {
		for _, key := range tokenKeys {
			delete(doc, key)
		}
		for _, key := range userKeys {
			delete(doc, key)
		}
	})
}

// Migrate folds legacy aliases into the primary keys and stamps the schema
// version. Run once at startup; subsequent runs are no-ops. Reports whether
// anything changed.
func (s *Store) Migrate(ctx context.Context) bool {
	if s.path == "" {
		return false
	}
	doc := s.load()
	if v, ok := stringAt(doc, keyStoreSchema); ok && v == versionString(currentSchemaVersion) {
		return false
	}

	changed := false
	if _, ok := doc[keyToken]; !ok {
		for _, alias := range tokenKeys[1:] {
			if raw, found := doc[alias]; found {
				doc[keyToken] = raw
				changed = true
				break
			}
		}
	}
	if _, ok := doc[keyUser]; !ok {
		if raw, found := doc["user"]; found {
			doc[keyUser] = raw
			changed = true
		}
	}
	for _, alias := range tokenKeys[1:] {
		if _, found := doc[alias]; found {
			delete(doc, alias)
			changed = true
		}
	}
	if _, found := doc["user"]; found {
		delete(doc, "user")
		changed = true
	}

	encoded, err := json.Marshal(versionString(currentSchemaVersion))
	if err == nil {
		doc[keyStoreSchema] = encoded
	}
	s.write(doc)
	if changed && s.logg != nil {
		s.logg.Info(ctx, "credential store migrated to current layout")
	}
	return changed
}

func (s *Store) load() map[string]json.RawMessage {
	if s.path == "" {
		return map[string]json.RawMessage{}
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]json.RawMessage{}
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string]json.RawMessage{}
	}
	return doc
}

func (s *Store) update(mutate func(map[string]json.RawMessage)) {
	if s.path == "" {
		return
	}
	doc := s.load()
	mutate(doc)
	s.write(doc)
}

func (s *Store) write(doc map[string]json.RawMessage) {
	if s.path == "" {
		return
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		s.warn("creating credential dir", err)
		return
	}
	// Write-then-rename so a crash mid-write never corrupts the stored keys.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-")
	if err != nil {
		s.warn("creating credential temp file", err)
		return
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.warn("writing credential file", err)
		return
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.warn("restricting credential file mode", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		s.warn("writing credential file", err)
		return
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		s.warn("replacing credential file", err)
	}
}

func (s *Store) warn(msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(context.Background(), msg+": "+err.Error())
}

func stringAt(doc map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := doc[key]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// parseProfile tolerates both an inline object and a doubly-encoded JSON
// string, the layout older releases produced. Anything else reads as nil.
func parseProfile(raw json.RawMessage) *UserProfile {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	var profile UserProfile
	if err := json.Unmarshal(raw, &profile); err == nil && trimmed[0] == '{' {
		return &profile
	}
	var nested string
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(nested), &profile); err != nil {
		return nil
	}
	return &profile
}

func versionString(v int) string {
	return "v" + strconv.Itoa(v)
}
