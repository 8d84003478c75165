package main

import (
	"testing"

	"github.com/updatekit/updatekit-go/internal/update"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name    string
		want    update.UpdatePolicy
		wantErr bool
	}{
		{"latest", update.PolicyLatest, false},
		{"silent", update.PolicySilent, false},
		{"popup", update.PolicyPopup, false},
		{"popup_force", update.PolicyPopupForce, false},
		{"forced", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := parsePolicy(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parsePolicy(%q) expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePolicy(%q) unexpected error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parsePolicy(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
