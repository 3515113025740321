package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"community-wins-system/models"
	"community-wins-system/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMembership struct {
	identity *MemberIdentity
	err      error
	calls    int
}

func (f *fakeMembership) ResolveUser(_ context.Context, _ string) (*MemberIdentity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func newAuthFixture(t *testing.T, membership MembershipClient) (*AuthService, *UserService) {
	db := openTestDB(t)
	users := NewUserService(db)
	sessions := NewSessionStore(NewMemorySessionStorage())
	return NewAuthService(users, membership, sessions), users
}

func TestAuthenticate_CreatesUserAndSession(t *testing.T) {
	membership := &fakeMembership{identity: &MemberIdentity{ID: "user_123", Username: "casey"}}
	auth, _ := newAuthFixture(t, membership)

	user, sess, err := auth.Authenticate(context.Background(), "tok-1", "")
	require.NoError(t, err)

	assert.Equal(t, "user_123", user.UserID)
	assert.Equal(t, "casey", user.Username)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.EqualValues(t, 0, user.Points)
	assert.Equal(t, BadgeInitiate, user.Badge)

	require.NotNil(t, sess)
	assert.Equal(t, "tok-1", sess.AccessToken)
	assert.True(t, auth.Sessions.IsAuthenticated(context.Background(), "tok-1"))
}

func TestAuthenticate_IdempotentIdentityResolution(t *testing.T) {
	membership := &fakeMembership{identity: &MemberIdentity{ID: "user_123", Username: "casey"}}
	auth, users := newAuthFixture(t, membership)

	first, _, err := auth.Authenticate(context.Background(), "tok-1", "")
	require.NoError(t, err)
	second, _, err := auth.Authenticate(context.Background(), "tok-1", "")
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)

	var count int64
	require.NoError(t, users.DB.Model(&models.User{}).Where("user_id = ?", "user_123").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthenticate_KeepsExistingUsernameWhenProviderOmitsOne(t *testing.T) {
	membership := &fakeMembership{identity: &MemberIdentity{ID: "user_123", Username: "casey"}}
	auth, users := newAuthFixture(t, membership)

	_, _, err := auth.Authenticate(context.Background(), "tok-1", "")
	require.NoError(t, err)

	membership.identity.Username = ""
	user, _, err := auth.Authenticate(context.Background(), "tok-1", "")
	require.NoError(t, err)
	assert.Equal(t, "casey", user.Username)

	stored, err := users.GetByUserID("user_123")
	require.NoError(t, err)
	assert.Equal(t, "casey", stored.Username)
}

func TestAuthenticate_DefaultsUsernameFromIDSuffix(t *testing.T) {
	membership := &fakeMembership{identity: &MemberIdentity{ID: "user_9f3k"}}
	auth, _ := newAuthFixture(t, membership)

	user, _, err := auth.Authenticate(context.Background(), "tok-1", "")
	require.NoError(t, err)
	assert.Equal(t, "User9f3k", user.Username)
}

func TestAuthenticate_ProviderErrorCreatesNothing(t *testing.T) {
	membership := &fakeMembership{err: apperrors.Authentication(apperrors.ReasonInvalidToken, "access token is invalid or expired")}
	auth, users := newAuthFixture(t, membership)

	_, _, err := auth.Authenticate(context.Background(), "bad-tok", "")
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.KindAuthentication, appErr.Kind)
	assert.Equal(t, apperrors.ReasonInvalidToken, appErr.Reason)

	var count int64
	require.NoError(t, users.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.False(t, auth.Sessions.IsAuthenticated(context.Background(), "bad-tok"))
}

func TestWhopClient_ErrorClasses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		reason apperrors.AuthReason
	}{
		{"unauthorized", http.StatusUnauthorized, apperrors.ReasonInvalidToken},
		{"forbidden", http.StatusForbidden, apperrors.ReasonForbidden},
		{"not found", http.StatusNotFound, apperrors.ReasonUserNotFound},
		{"server error", http.StatusBadGateway, apperrors.ReasonProviderUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := NewWhopClient(srv.URL)
			_, err := client.ResolveUser(context.Background(), "tok")
			require.Error(t, err)

			appErr := apperrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.KindAuthentication, appErr.Kind)
			assert.Equal(t, tc.reason, appErr.Reason)
			assert.NotEmpty(t, appErr.Message)
		})
	}
}

func TestWhopClient_ResolvesIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user_123","username":"casey"}`))
	}))
	defer srv.Close()

	client := NewWhopClient(srv.URL)
	identity, err := client.ResolveUser(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user_123", identity.ID)
	assert.Equal(t, "casey", identity.Username)
}

func TestWhopClient_UnreachableProvider(t *testing.T) {
	client := NewWhopClient("http://127.0.0.1:1")
	_, err := client.ResolveUser(context.Background(), "tok")
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ReasonProviderUnavailable, appErr.Reason)
}
