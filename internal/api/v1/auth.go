package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lotwise/dealerd/internal/auth"
	"github.com/lotwise/dealerd/internal/domain"
)

type LoginInput struct {
	Body struct {
		DealerSlug string `json:"dealer_slug" minLength:"1" maxLength:"63" doc:"Dealer slug"`
		Email      string `json:"email" minLength:"3" maxLength:"255" doc:"Staff email"`
		Password   string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

type GoogleAuthorizeInput struct {
	State string `query:"state" minLength:"1" maxLength:"255" doc:"Opaque CSRF state echoed back on the callback"`
}

type GoogleAuthorizeOutput struct {
	Status   int
	Location string `header:"Location"`
}

type GoogleCallbackInput struct {
	Code  string `query:"code" minLength:"1" doc:"Authorization code"`
	State string `query:"state" doc:"CSRF state from the authorize redirect"`
}

type GoogleCallbackOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

func RegisterAuthRoutes(api huma.API, store DataStore, authSvc AuthService, google *auth.OAuthProvider) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		dealer, err := store.Dealers().GetBySlug(ctx, input.Body.DealerSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("dealer not found")
			}
			return nil, huma.Error500InternalServerError("failed to look up dealer", err)
		}

		accessToken, refreshToken, err := authSvc.Login(ctx, dealer.ID, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrAccountDisabled) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := authSvc.Refresh(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})

	if google == nil {
		return
	}

	huma.Register(api, huma.Operation{
		OperationID: "google-authorize",
		Method:      http.MethodGet,
		Path:        "/auth/oauth/google",
		Summary:     "Redirect to Google sign-in",
		Tags:        []string{"Auth"},
	}, func(_ context.Context, input *GoogleAuthorizeInput) (*GoogleAuthorizeOutput, error) {
		return &GoogleAuthorizeOutput{
			Status:   http.StatusFound,
			Location: google.AuthorizationURL(input.State),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "google-callback",
		Method:      http.MethodGet,
		Path:        "/auth/oauth/google/callback",
		Summary:     "Complete Google sign-in",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *GoogleCallbackInput) (*GoogleCallbackOutput, error) {
		accessToken, refreshToken, err := authSvc.LoginWithGoogle(ctx, google, input.Code)
		if err != nil {
			if errors.Is(err, auth.ErrUnknownStaff) || errors.Is(err, auth.ErrAccountDisabled) {
				return nil, huma.Error401Unauthorized("no active staff profile for this account")
			}
			return nil, huma.Error500InternalServerError("google sign-in failed", err)
		}

		out := &GoogleCallbackOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})
}
