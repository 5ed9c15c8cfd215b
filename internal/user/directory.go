package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chaitanyakotagiri27/SecureShift/internal/common"
	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
)

// directory adapts the user repository to the messaging engine's actor
// lookup. Deactivated and deleted accounts resolve to nothing, so they
// can no longer receive messages.
type directory struct {
	repo UserRepository
}

func NewDirectory(repo UserRepository) messaging.ActorDirectory {
	return &directory{repo: repo}
}

func (d *directory) ActorByID(ctx context.Context, id string) (*messaging.Actor, error) {
	user, err := d.repo.UserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.Status != common.StatusActive {
		return nil, nil
	}

	return &messaging.Actor{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
