package update

import (
	"time"

	"go.uber.org/zap"

	"github.com/updatekit/updatekit-go/internal/state"
	"github.com/updatekit/updatekit-go/internal/version"
)

// Engine computes UpdateState values and applies user interactions to the
// local state store. Calculation is synchronous and performs no I/O beyond
// local store reads and writes.
type Engine struct {
	store              *state.Store
	logger             *zap.Logger
	currentVersionName string

	now func() time.Time
}

// NewEngine creates an engine. currentVersionName is the installed app's
// display version from the caller's bundle metadata; it is echoed into
// UpdateState and never compared.
func NewEngine(st *state.Store, currentVersionName string, logger *zap.Logger) *Engine {
	return &Engine{
		store:              st,
		logger:             logger,
		currentVersionName: currentVersionName,
		now:                time.Now,
	}
}

// SetClock sets the time source. Primarily for testing.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// CalculateUpdateState maps a channel record plus persisted history into a
// presentation decision. Calling it twice with no mutator calls and no time
// elapsed yields identical states.
func (e *Engine) CalculateUpdateState(rec ChannelRecord, currentVersionCode string) UpdateState {
	available := version.IsNewer(currentVersionCode, rec.VersionCode)

	// Any channel with an unread post shows a badge, regardless of policy.
	showBadge := rec.PostURL != "" && !e.store.IsPostOpened(rec.PostURL)

	showButton := rec.UpdateType == PolicySilent && available

	showPopup := false
	switch rec.UpdateType {
	case PolicyPopup:
		showPopup = available && e.showIntervalElapsed(rec)
	case PolicyPopupForce:
		if available {
			e.rollOverForcedUpdate(rec)
			showPopup = true
		}
	}

	remaining := 0
	if rec.UpdateType == PolicyPopupForce {
		e.store.InitializeSkipAttempts(rec.SkipAttempts, rec.VersionCode)
		remaining = e.store.RemainingSkipAttempts(rec.VersionCode)
	}

	st := UpdateState{
		UpdateType:            rec.UpdateType,
		IsUpdateAvailable:     available,
		ShowBadge:             showBadge,
		ShowPopup:             showPopup,
		ShowUpdateButton:      showButton,
		RemainingSkipAttempts: remaining,
		BadgeURL:              e.resolveBadgeURL(rec),
		UpdateURL:             resolveUpdateURL(rec),
		CurrentVersionCode:    currentVersionCode,
		TargetVersionCode:     rec.VersionCode,
		CurrentVersionName:    e.currentVersionName,
		TargetVersionName:     rec.VersionName,
		Record:                rec,
	}

	e.logger.Debug("Calculated update state",
		zap.String("channel", rec.Channel),
		zap.String("policy", rec.UpdateType.String()),
		zap.String("current", currentVersionCode),
		zap.String("target", rec.VersionCode),
		zap.Bool("available", available),
		zap.Bool("popup", showPopup),
		zap.Int("remaining_skips", remaining))

	return st
}

// MarkPostAsOpened records that the user opened the post at url. A
// subsequent calculation drops the badge and routes BadgeURL to the list.
func (e *Engine) MarkPostAsOpened(url string) {
	e.store.MarkPostOpened(url)
}

// IsPostOpened reports whether the post at url has been read.
func (e *Engine) IsPostOpened(url string) bool {
	return e.store.IsPostOpened(url)
}

// MarkPopupAsShown records a popup presentation for versionCode: the shown
// timestamp feeds PolicyPopup's interval gate, the version scalar feeds
// PolicyPopupForce's rollover detection.
func (e *Engine) MarkPopupAsShown(versionCode string, policy UpdatePolicy) {
	e.store.SetLastPopupShownTime(e.now(), versionCode)
	e.store.SetLastPopupVersion(versionCode)

	e.logger.Debug("Popup shown",
		zap.String("version", versionCode),
		zap.String("policy", policy.String()))
}

// SkipUpdate consumes one skip attempt for versionCode and returns the
// remaining count. The caller stops offering the skip affordance at zero.
func (e *Engine) SkipUpdate(versionCode string) int {
	remaining := e.store.DecrementSkipAttempts(versionCode)

	e.logger.Debug("Update skipped",
		zap.String("version", versionCode),
		zap.Int("remaining", remaining))

	return remaining
}

// showIntervalElapsed gates PolicyPopup: pass if the popup has never been
// shown for this version, or at least ShowInterval minutes have passed.
func (e *Engine) showIntervalElapsed(rec ChannelRecord) bool {
	last, ok := e.store.LastPopupShownTime(rec.VersionCode)
	if !ok {
		return true
	}
	return e.now().Sub(last) >= time.Duration(rec.ShowInterval)*time.Minute
}

// rollOverForcedUpdate discards skip and shown state recorded for a previous
// forced-update version once the server announces a different target, then
// seeds the new version's skip counter from the server budget.
func (e *Engine) rollOverForcedUpdate(rec ChannelRecord) {
	if prev, ok := e.store.LastPopupVersion(); ok && prev != rec.VersionCode {
		e.store.ClearData(prev)
		e.logger.Debug("Forced update rolled over",
			zap.String("from", prev),
			zap.String("to", rec.VersionCode))
	}
	e.store.InitializeSkipAttempts(rec.SkipAttempts, rec.VersionCode)
}

// resolveBadgeURL picks the badge target: the single post while unread,
// otherwise the post list.
func (e *Engine) resolveBadgeURL(rec ChannelRecord) string {
	if rec.PostURL == "" || e.store.IsPostOpened(rec.PostURL) {
		return rec.PostsURL
	}
	return rec.PostURL
}

// resolveUpdateURL prefers the store URL over the deep link.
func resolveUpdateURL(rec ChannelRecord) string {
	if rec.AppURL != "" {
		return rec.AppURL
	}
	return rec.AppDeeplink
}
