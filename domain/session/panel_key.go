package session

import (
	"fmt"
	"net/url"
	"strings"

	"csvplot/domain/core"
)

// Role names one interactive element of a panel.
type Role string

const (
	RoleGraph Role = "graph"
	RoleXAxis Role = "x-axis"
	RoleYAxis Role = "y-axis"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleGraph, RoleXAxis, RoleYAxis:
		return true
	}
	return false
}

// PanelKey routes an element event to its panel without cross-talk.
type PanelKey struct {
	Role     Role   `json:"role"`
	Filename string `json:"filename"`
}

// KeyFor builds the key of role inside the panel for filename
func KeyFor(role Role, filename string) PanelKey {
	return PanelKey{Role: role, Filename: filename}
}

// String encodes the key as "role:escaped-filename", safe for DOM ids.
func (k PanelKey) String() string {
	return string(k.Role) + ":" + url.PathEscape(k.Filename)
}

// ParsePanelKey decodes a key produced by PanelKey.String
func ParsePanelKey(s string) (PanelKey, error) {
	role, escaped, ok := strings.Cut(s, ":")
	if !ok {
		return PanelKey{}, fmt.Errorf("panel key %q has no role separator", s)
	}
	if !Role(role).Valid() {
		return PanelKey{}, fmt.Errorf("panel key %q: %w: %q", s, core.ErrUnknownRole, role)
	}
	filename, err := url.PathUnescape(escaped)
	if err != nil {
		return PanelKey{}, fmt.Errorf("panel key %q has bad filename: %w", s, err)
	}
	if filename == "" {
		return PanelKey{}, fmt.Errorf("panel key %q has empty filename", s)
	}
	return PanelKey{Role: Role(role), Filename: filename}, nil
}
