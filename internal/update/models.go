// Package update derives UI-visibility decisions from a server channel
// record, the installed app version, and locally persisted interaction state.
package update

import "encoding/json"

// UpdatePolicy is the server-declared behavior for a channel's target release.
type UpdatePolicy int

const (
	// PolicyLatest announces the release without prompting.
	PolicyLatest UpdatePolicy = iota
	// PolicySilent shows an update button but no popup.
	PolicySilent
	// PolicyPopup shows a dismissible popup, rate-limited by ShowInterval.
	PolicyPopup
	// PolicyPopupForce shows a non-closable popup with a limited skip budget.
	PolicyPopupForce
)

func (p UpdatePolicy) String() string {
	switch p {
	case PolicyLatest:
		return "latest"
	case PolicySilent:
		return "silent"
	case PolicyPopup:
		return "popup"
	case PolicyPopupForce:
		return "popup_force"
	default:
		return "unknown"
	}
}

// ChannelRecord is one channel's resolved target release as returned by the
// config endpoint. Immutable per fetch.
type ChannelRecord struct {
	Channel     string       `json:"channel"`
	VersionCode string       `json:"version_code"`
	VersionName string       `json:"version_name"`
	AppDeeplink string       `json:"app_deeplink,omitempty"`
	AppURL      string       `json:"app_url,omitempty"`
	PostURL     string       `json:"post_url,omitempty"`
	PostsURL    string       `json:"posts_url,omitempty"`
	UpdateType  UpdatePolicy `json:"update_type"`
	Message     string       `json:"message,omitempty"`
	// SkipAttempts is the skip budget for PolicyPopupForce.
	SkipAttempts int `json:"skip_attempts"`
	// ShowInterval is the minimum minutes between popups for PolicyPopup.
	ShowInterval int `json:"show_interval"`
}

// ChannelResponse is the config endpoint's response body.
type ChannelResponse struct {
	HomeURL string          `json:"home_url"`
	Data    []ChannelRecord `json:"data"`
}

// UpdateState is one decision cycle's result: what to show and where to send
// the user. Immutable; recompute after any mutator call.
type UpdateState struct {
	UpdateType        UpdatePolicy `json:"update_type"`
	IsUpdateAvailable bool         `json:"is_update_available"`

	ShowBadge        bool `json:"show_badge"`
	ShowPopup        bool `json:"show_popup"`
	ShowUpdateButton bool `json:"show_update_button"`

	RemainingSkipAttempts int `json:"remaining_skip_attempts"`

	// BadgeURL is the post to open from the badge: the unread post itself,
	// or the post list once it has been read.
	BadgeURL string `json:"badge_url,omitempty"`
	// UpdateURL is where to send the user to install: store URL preferred
	// over the deep link.
	UpdateURL string `json:"update_url,omitempty"`

	CurrentVersionCode string `json:"current_version_code"`
	TargetVersionCode  string `json:"target_version_code"`
	CurrentVersionName string `json:"current_version_name"`
	TargetVersionName  string `json:"target_version_name"`

	Record ChannelRecord `json:"record"`
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *UpdateState) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *UpdateState) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
