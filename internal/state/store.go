// Package state persists per-version and per-post interaction history:
// which posts the user has read, how many forced-update skips remain, and
// when an update popup was last shown.
package state

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit-go/internal/kv"
)

// Key namespaces. Version-scoped entries are keyed "<namespace>_<versionCode>".
const (
	openedPostPrefix    = "opened_post_"
	skipRemainingPrefix = "skip_remaining_"
	popupShownAtPrefix  = "popup_shown_at_"
	lastPopupVersionKey = "last_popup_version"
	installIDKey        = "install_id"
)

// Store wraps the key-value substrate with the typed operations the decision
// engine needs. A missing key is a well-defined default, never an error;
// substrate failures degrade to that default and are logged.
type Store struct {
	kv     kv.Store
	logger *zap.Logger
}

// New creates a Store on top of the given substrate.
func New(kvStore kv.Store, logger *zap.Logger) *Store {
	return &Store{kv: kvStore, logger: logger}
}

// MarkPostOpened records that the post at url has been read. Idempotent.
func (s *Store) MarkPostOpened(url string) {
	if url == "" {
		return
	}
	if err := s.kv.Set(openedPostPrefix+url, "1"); err != nil {
		s.logger.Warn("Failed to persist opened post", zap.String("url", url), zap.Error(err))
	}
}

// IsPostOpened reports whether the post at url has been read.
func (s *Store) IsPostOpened(url string) bool {
	return s.get(openedPostPrefix+url) == "1"
}

// InitializeSkipAttempts writes the server's skip budget for versionCode,
// but only if no counter exists yet. First-write-wins, so a repeated config
// fetch cannot reset an already-decremented count.
func (s *Store) InitializeSkipAttempts(budget int, versionCode string) {
	key := skipRemainingPrefix + versionCode
	if _, found, err := s.kv.Get(key); err == nil && found {
		return
	}
	if budget < 0 {
		budget = 0
	}
	if err := s.kv.Set(key, strconv.Itoa(budget)); err != nil {
		s.logger.Warn("Failed to initialize skip attempts",
			zap.String("version", versionCode), zap.Error(err))
	}
}

// DecrementSkipAttempts consumes one skip attempt for versionCode and
// returns the remaining count. The counter never goes below zero; an absent
// counter reads as zero.
func (s *Store) DecrementSkipAttempts(versionCode string) int {
	remaining := s.RemainingSkipAttempts(versionCode) - 1
	if remaining < 0 {
		remaining = 0
	}
	if err := s.kv.Set(skipRemainingPrefix+versionCode, strconv.Itoa(remaining)); err != nil {
		s.logger.Warn("Failed to persist skip attempts",
			zap.String("version", versionCode), zap.Error(err))
	}
	return remaining
}

// RemainingSkipAttempts returns the stored counter for versionCode, 0 if absent.
func (s *Store) RemainingSkipAttempts(versionCode string) int {
	n, err := strconv.Atoi(s.get(skipRemainingPrefix + versionCode))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetLastPopupShownTime records when the popup for versionCode was shown.
func (s *Store) SetLastPopupShownTime(ts time.Time, versionCode string) {
	key := popupShownAtPrefix + versionCode
	if err := s.kv.Set(key, strconv.FormatInt(ts.UnixMilli(), 10)); err != nil {
		s.logger.Warn("Failed to persist popup shown time",
			zap.String("version", versionCode), zap.Error(err))
	}
}

// LastPopupShownTime returns when the popup for versionCode was last shown.
func (s *Store) LastPopupShownTime(versionCode string) (time.Time, bool) {
	raw := s.get(popupShownAtPrefix + versionCode)
	if raw == "" {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// SetLastPopupVersion records the most recent version code a popup flow was
// engaged for. Used to detect version rollover.
func (s *Store) SetLastPopupVersion(versionCode string) {
	if err := s.kv.Set(lastPopupVersionKey, versionCode); err != nil {
		s.logger.Warn("Failed to persist last popup version",
			zap.String("version", versionCode), zap.Error(err))
	}
}

// LastPopupVersion returns the most recent popup version code, if any.
func (s *Store) LastPopupVersion() (string, bool) {
	v := s.get(lastPopupVersionKey)
	return v, v != ""
}

// ClearData removes the skip counter and shown timestamp for one version
// code. Called when a forced-update flow rolls over to a new target version.
func (s *Store) ClearData(versionCode string) {
	for _, key := range []string{
		skipRemainingPrefix + versionCode,
		popupShownAtPrefix + versionCode,
	} {
		if err := s.kv.Delete(key); err != nil {
			s.logger.Warn("Failed to clear version state",
				zap.String("key", key), zap.Error(err))
		}
	}
}

// InstallID returns the stable per-installation identifier, generating and
// persisting one on first use. If persistence fails, the fresh identifier is
// still returned so the current session can proceed.
func (s *Store) InstallID() string {
	if id := s.get(installIDKey); id != "" {
		return id
	}
	id := uuid.NewString()
	if err := s.kv.Set(installIDKey, id); err != nil {
		s.logger.Warn("Failed to persist install ID", zap.Error(err))
	}
	return id
}

// get reads a key, treating both absence and substrate failure as empty.
func (s *Store) get(key string) string {
	v, found, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("Failed to read local state", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !found {
		return ""
	}
	return v
}
