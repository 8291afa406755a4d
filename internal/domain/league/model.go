package league

import (
	"fmt"
	"strings"
)

// League is a basketball competition owned by a country.
type League struct {
	Key        string
	Name       string
	CountryKey string
}

func (l League) Validate() error {
	if strings.TrimSpace(l.Key) == "" {
		return fmt.Errorf("league key is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(l.CountryKey) == "" {
		return fmt.Errorf("league country key is required")
	}
	return nil
}
