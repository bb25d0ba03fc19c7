package team

import (
	"fmt"
	"time"
)

const (
	RolePlayer  = "player"
	RoleCaptain = "captain"
)

// Team is a street squad owned by its creator.
type Team struct {
	ID          string
	Name        string
	Description string
	CreatedByID string
	CreatedAt   time.Time
}

// Membership links a player to a team roster.
type Membership struct {
	TeamID   string
	UserID   string
	Role     string
	JoinedAt time.Time
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.CreatedByID == "" {
		return fmt.Errorf("team creator id is required")
	}

	return nil
}
