package services

import (
	"context"

	"community-wins-system/models"
	"community-wins-system/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AuthService exchanges a platform access token for a verified identity,
// materializes the directory record, and issues the session.
type AuthService struct {
	Users      *UserService
	Membership MembershipClient
	Sessions   *SessionStore
}

func NewAuthService(users *UserService, membership MembershipClient, sessions *SessionStore) *AuthService {
	return &AuthService{Users: users, Membership: membership, Sessions: sessions}
}

// Authenticate resolves the token, upserts the user and stores a fresh
// 24-hour session keyed by the token. Repeated calls with a valid token
// converge on the same user record.
func (s *AuthService) Authenticate(ctx context.Context, accessToken, refreshToken string) (*models.User, *Session, error) {
	identity, err := s.Membership.ResolveUser(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.Users.UpsertFromIdentity(identity.ID, identity.Username)
	if err != nil {
		return nil, nil, err
	}

	sess := NewSession(SessionUser{ID: user.UserID, Username: user.Username}, accessToken, refreshToken)
	s.Sessions.Set(ctx, sess)

	logger.WithFields(logrus.Fields{"user_id": user.UserID, "badge": user.Badge}).
		Info("user authenticated")
	return user, sess, nil
}

// Logout drops the session for the presented token.
func (s *AuthService) Logout(ctx context.Context, accessToken string) {
	s.Sessions.Clear(ctx, accessToken)
}
