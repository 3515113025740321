package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"
)

// MemberIdentity is the canonical identity the platform resolves an access
// token to.
type MemberIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MembershipClient resolves opaque platform access tokens to identities.
type MembershipClient interface {
	ResolveUser(ctx context.Context, accessToken string) (*MemberIdentity, error)
}

// WhopClient talks to the membership platform's REST API.
type WhopClient struct {
	BaseURL string
	Client  *http.Client
}

func NewWhopClient(baseURL string) *WhopClient {
	return &WhopClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ResolveUser calls the platform's current-user endpoint with the member's
// own token. Each failure class maps to a distinct, user-displayable
// authentication error.
func (c *WhopClient) ResolveUser(ctx context.Context, accessToken string) (*MemberIdentity, error) {
	url := fmt.Sprintf("%s/v5/me", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Integration("failed to build membership request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.Client.Do(req)
	if err != nil {
		logger.Errorf("membership API unreachable: %v", err)
		return nil, apperrors.Authentication(apperrors.ReasonProviderUnavailable,
			"membership platform is unavailable, try again shortly")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.Authentication(apperrors.ReasonInvalidToken,
			"access token is invalid or expired")
	case resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.Authentication(apperrors.ReasonForbidden,
			"access token is not permitted to access this community")
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.Authentication(apperrors.ReasonUserNotFound,
			"no platform account matches this token")
	case resp.StatusCode != http.StatusOK:
		logger.Errorf("membership API returned %d: %s", resp.StatusCode, string(body))
		return nil, apperrors.Authentication(apperrors.ReasonProviderUnavailable,
			"membership platform is unavailable, try again shortly")
	}

	var identity MemberIdentity
	if err := json.Unmarshal(body, &identity); err != nil {
		logger.Errorf("membership API response unparsable: %v", err)
		return nil, apperrors.Authentication(apperrors.ReasonProviderUnavailable,
			"membership platform returned an unexpected response")
	}
	if identity.ID == "" {
		return nil, apperrors.Authentication(apperrors.ReasonUserNotFound,
			"no platform account matches this token")
	}

	return &identity, nil
}
