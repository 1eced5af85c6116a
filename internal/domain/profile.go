package domain

import (
	"fmt"
	"strings"
)

// ProfileName identifies one stored connection profile.
type ProfileName string

// Profile is a named connection target: where to reach the backend and
// which identity to present by default. Passwords never live here; they
// are looked up from the credential store under SecretRef.
type Profile struct {
	Name      ProfileName
	Address   string
	User      string
	Client    string
	SecretRef string
	Default   bool
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.Name)) == "" {
		return fmt.Errorf("profile name is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		return fmt.Errorf("profile %q: address is required", p.Name)
	}
	return nil
}
