package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Zedster07/StreetBaller/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(seed []user.User) *UserRepository {
	users := make(map[string]user.User, len(seed))
	for _, item := range seed {
		users[item.ID] = item
	}

	return &UserRepository{users: users}
}

func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.IdentityUID == u.IdentityUID {
			return user.User{}, fmt.Errorf("identity %s already registered", u.IdentityUID)
		}
		if existing.Email == u.Email {
			return user.User{}, fmt.Errorf("email %s already registered", u.Email)
		}
	}
	r.users[u.ID] = u

	return u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]

	return u, ok, nil
}

func (r *UserRepository) GetByIdentityUID(_ context.Context, uid string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.IdentityUID == uid {
			return u, true, nil
		}
	}

	return user.User{}, false, nil
}
