package country

import (
	"fmt"
	"strings"
)

// Country groups leagues. Key is the provider's country_key.
type Country struct {
	Key  string
	Name string
}

func (c Country) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("country key is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("country name is required")
	}
	return nil
}
