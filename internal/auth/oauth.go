package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthProvider holds the configuration for an OAuth2 identity provider.
type OAuthProvider struct {
	Name        string
	UserInfoURL string

	oauthConfig *oauth2.Config
}

// NewGoogleProvider returns an OAuth2 configuration for Google sign-in.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *OAuthProvider {
	return &OAuthProvider{
		Name:        "google",
		UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
			RedirectURL:  redirectURL,
		},
	}
}

// AuthorizationURL returns the OAuth2 authorization URL with the given state parameter.
func (p *OAuthProvider) AuthorizationURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for tokens and fetches user
// info. Returns the provider-side user ID, email, and display name.
func (p *OAuthProvider) ExchangeCode(ctx context.Context, code string) (providerID, email, name string, err error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: %w", err)
	}

	client := p.oauthConfig.Client(ctx, token)

	resp, err := client.Get(p.UserInfoURL)
	if err != nil {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: user info returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: reading user info: %w", err)
	}

	return parseGoogleUserInfo(body)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func parseGoogleUserInfo(data []byte) (providerID, email, name string, err error) {
	var info googleUserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return "", "", "", fmt.Errorf("auth.parseGoogleUserInfo: %w", err)
	}

	return info.ID, info.Email, info.Name, nil
}
