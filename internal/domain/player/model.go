package player

import "fmt"

// Position is the pitch role a player registers with.
type Position string

const (
	PositionGoalkeeper   Position = "GK"
	PositionCenterBack   Position = "CB"
	PositionLeftBack     Position = "LB"
	PositionRightBack    Position = "RB"
	PositionCenterMid    Position = "CM"
	PositionAttackingMid Position = "CAM"
	PositionLeftWing     Position = "LW"
	PositionRightWing    Position = "RW"
	PositionStriker      Position = "ST"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper:   {},
	PositionCenterBack:   {},
	PositionLeftBack:     {},
	PositionRightBack:    {},
	PositionCenterMid:    {},
	PositionAttackingMid: {},
	PositionLeftWing:     {},
	PositionRightWing:    {},
	PositionStriker:      {},
}

// Profile carries a player's public identity and lifetime counters. The
// counters are write-through increments fed by the match event log;
// TrustPoints is the denormalized, floor-clamped ledger balance.
type Profile struct {
	UserID      string
	DisplayName string
	Position    Position
	PhotoURL    string
	TrustPoints int
	SkillCoins  int
	GamesPlayed int
	Wins        int
	Losses      int
	Draws       int
	GoalsScored int
	Assists     int
	OwnGoals    int
	Cards       int
}

// StatDelta is a lifetime-counter increment derived from one match event.
type StatDelta struct {
	GoalsScored int
	Assists     int
	OwnGoals    int
	Cards       int
}

func (p Profile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("player user id is required")
	}
	if p.DisplayName == "" {
		return fmt.Errorf("player display name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
