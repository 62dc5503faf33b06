package services

import (
	"context"

	"github.com/vrmarket/vrmarket/internal/client/agent"
	"github.com/vrmarket/vrmarket/internal/client/models"
)

// UsersService defines profile operations.
type UsersService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (models.User, error)
	GetCurrentUser(ctx context.Context) (*models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateUser(ctx context.Context, in UpdateUserInput) (models.User, error)
	GetUserStats(ctx context.Context, userID string) (models.UserStats, error)
	GetMyStats(ctx context.Context) (models.UserStats, error)
	GetUserProfile(ctx context.Context, userID string) (models.UserProfile, error)
	CheckUserSetup(ctx context.Context) (models.UserSetup, error)
}

type usersService struct {
	gw Gateway
}

// NewUsersService constructs a UsersService bound to the given gateway.
func NewUsersService(gw Gateway) UsersService {
	return &usersService{gw: gw}
}

func (s *usersService) CreateUser(ctx context.Context, in CreateUserInput) (models.User, error) {
	if err := in.Validate(); err != nil {
		return models.User{}, err
	}
	v, err := s.gw.Call(ctx, ActorUsers, "createUser", in.wire())
	if err != nil {
		return models.User{}, err
	}
	return models.UserFromValue(v)
}

// GetCurrentUser resolves the signed-in principal's profile. A missing
// profile is not an error; it returns nil so callers can branch into the
// signup flow.
func (s *usersService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	v, err := s.gw.Query(ctx, ActorUsers, "getCurrentUser")
	if err != nil {
		if agent.IsKind(err, agent.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	u, err := models.UserFromValue(v)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *usersService) GetUser(ctx context.Context, userID string) (models.User, error) {
	v, err := s.gw.Query(ctx, ActorUsers, "getUser", userID)
	if err != nil {
		return models.User{}, err
	}
	return models.UserFromValue(v)
}

func (s *usersService) UpdateUser(ctx context.Context, in UpdateUserInput) (models.User, error) {
	if err := in.Validate(); err != nil {
		return models.User{}, err
	}
	v, err := s.gw.Call(ctx, ActorUsers, "updateUser", in.wire())
	if err != nil {
		return models.User{}, err
	}
	return models.UserFromValue(v)
}

func (s *usersService) GetUserStats(ctx context.Context, userID string) (models.UserStats, error) {
	v, err := s.gw.Query(ctx, ActorUsers, "getUserStats", userID)
	if err != nil {
		return models.UserStats{}, err
	}
	return models.StatsFromValue(v)
}

func (s *usersService) GetMyStats(ctx context.Context) (models.UserStats, error) {
	u, err := s.GetCurrentUser(ctx)
	if err != nil {
		return models.UserStats{}, err
	}
	if u == nil {
		return models.UserStats{}, &agent.RemoteError{Kind: agent.KindNotFound, Message: "Resource not found"}
	}
	return s.GetUserStats(ctx, u.ID)
}

// GetUserProfile joins a user with their stats. Missing stats degrade to a
// zero-valued block anchored at the user's creation time rather than
// failing the whole profile.
func (s *usersService) GetUserProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}

	stats, err := s.GetUserStats(ctx, userID)
	if err != nil {
		stats = models.UserStats{JoinedAt: u.CreatedAt}
	}
	return models.UserProfile{User: u, Stats: stats}, nil
}

// CheckUserSetup reports whether the signed-in principal has a complete
// profile and which fields are still required.
func (s *usersService) CheckUserSetup(ctx context.Context) (models.UserSetup, error) {
	u, err := s.GetCurrentUser(ctx)
	if err != nil {
		return models.UserSetup{}, err
	}
	if u == nil {
		return models.UserSetup{
			Exists:         false,
			IsComplete:     false,
			RequiredFields: []string{"username"},
		}, nil
	}

	var required []string
	if u.Username == "" {
		required = append(required, "username")
	}
	return models.UserSetup{
		Exists:         true,
		IsComplete:     len(required) == 0,
		RequiredFields: required,
		User:           u,
	}, nil
}
