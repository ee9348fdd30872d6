package storage

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/sirupsen/logrus"
)

// CookieKey is the KV key holding the serialized cookie blob.
const CookieKey = "browserCookies"

// CookieBlob is an opaque string-to-string mapping kept across sessions.
// It is never derived from the framed site's network cookies.
type CookieBlob map[string]string

// CookieStore keeps the cookie blob in memory and writes the full blob
// through to the KV store on every mutation. A mutation whose write fails
// leaves the in-memory blob unchanged.
type CookieStore struct {
	kv     KV
	blob   CookieBlob
	logger logrus.FieldLogger
}

// LoadCookieStore reads the blob from kv. A missing entry yields an empty
// blob. An unparseable entry also yields an empty blob, which is written back
// so the next start sees valid data.
func LoadCookieStore(kv KV, logger logrus.FieldLogger) (*CookieStore, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &CookieStore{
		kv:     kv,
		blob:   CookieBlob{},
		logger: logger.WithField("component", "cookies"),
	}

	raw, ok, err := kv.Get(CookieKey)
	if err != nil {
		return nil, fmt.Errorf("loading cookies: %w", err)
	}
	if !ok {
		return s, nil
	}

	var blob CookieBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		s.logger.WithError(err).Warn("stored cookie blob is corrupt, starting empty")
		if err := s.save(s.blob); err != nil {
			return nil, err
		}
		return s, nil
	}
	if blob != nil {
		s.blob = blob
	}
	return s, nil
}

// Get returns the value stored under key.
func (s *CookieStore) Get(key string) (string, bool) {
	v, ok := s.blob[key]
	return v, ok
}

// Set stores value under key and persists the blob.
func (s *CookieStore) Set(key, value string) error {
	next := maps.Clone(s.blob)
	next[key] = value
	return s.commit(next)
}

// Delete removes key and persists the blob.
func (s *CookieStore) Delete(key string) error {
	next := maps.Clone(s.blob)
	delete(next, key)
	return s.commit(next)
}

// Clear empties the blob and persists it.
func (s *CookieStore) Clear() error {
	if err := s.commit(CookieBlob{}); err != nil {
		return err
	}
	s.logger.Info("cookies cleared")
	return nil
}

// Blob returns a copy of the current blob.
func (s *CookieStore) Blob() CookieBlob {
	return maps.Clone(s.blob)
}

// Len returns the number of entries in the blob.
func (s *CookieStore) Len() int {
	return len(s.blob)
}

// commit persists next and only then makes it the current blob.
func (s *CookieStore) commit(next CookieBlob) error {
	if err := s.save(next); err != nil {
		return err
	}
	s.blob = next
	return nil
}

func (s *CookieStore) save(blob CookieBlob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encoding cookies: %w", err)
	}
	if err := s.kv.Set(CookieKey, string(data)); err != nil {
		s.logger.WithError(err).Error("persisting cookies failed")
		return fmt.Errorf("saving cookies: %w", err)
	}
	return nil
}
