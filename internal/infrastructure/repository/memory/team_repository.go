package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Zedster07/StreetBaller/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	teams   map[string]team.Team
	members map[string][]team.Membership
}

func NewTeamRepository(seed []team.Team) *TeamRepository {
	teams := make(map[string]team.Team, len(seed))
	for _, item := range seed {
		teams[item.ID] = item
	}

	return &TeamRepository{
		teams:   teams,
		members: make(map[string][]team.Membership),
	}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[t.ID]; exists {
		return team.Team{}, fmt.Errorf("team %s already exists", t.ID)
	}
	for _, existing := range r.teams {
		if existing.Name == t.Name {
			return team.Team{}, fmt.Errorf("team name %q already taken", t.Name)
		}
	}
	r.teams[t.ID] = t

	return t, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]

	return t, ok, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *TeamRepository) AddMember(_ context.Context, m team.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members[m.TeamID] {
		if existing.UserID == m.UserID {
			return fmt.Errorf("user %s is already on team %s", m.UserID, m.TeamID)
		}
	}
	r.members[m.TeamID] = append(r.members[m.TeamID], m)

	return nil
}

func (r *TeamRepository) RemoveMember(_ context.Context, teamID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	memberships := r.members[teamID]
	for i, existing := range memberships {
		if existing.UserID == userID {
			r.members[teamID] = append(memberships[:i:i], memberships[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("user %s is not on team %s", userID, teamID)
}

func (r *TeamRepository) ListMembers(_ context.Context, teamID string) ([]team.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memberships := r.members[teamID]
	out := make([]team.Membership, 0, len(memberships))
	out = append(out, memberships...)

	return out, nil
}
