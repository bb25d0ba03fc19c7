package user

import "context"

// Repository describes user identity persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByIdentityUID(ctx context.Context, uid string) (User, bool, error)
}
