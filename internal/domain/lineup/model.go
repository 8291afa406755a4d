package lineup

import "github.com/riskibarqy/hoops-sync/internal/domain/fixture"

type Role string

const (
	RoleStarter    Role = "starter"
	RoleSubstitute Role = "substitute"
)

// Entry places one player on one side of a fixture's roster. Unique per
// (FixtureID, PlayerKey, Side).
type Entry struct {
	FixtureID string
	PlayerKey string
	Side      fixture.Side
	Role      Role
}
