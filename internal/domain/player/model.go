package player

// Player is identified by the provider's player_id. TeamKey is the last team
// the player was seen lining up for.
type Player struct {
	Key     string
	Name    string
	TeamKey string
}
