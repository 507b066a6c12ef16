package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrEmailNotVerified = errors.New("google account email is not verified")

type GoogleService interface {
	// GenerateState returns a random value for the state parameter and cookie.
	GenerateState() (string, error)
	// RedirectURL builds the consent URL carrying state.
	RedirectURL(state string) string
	// Exchange trades the authorization code for a token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// VerifyUser fetches the Google profile and requires a verified email.
	VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleInformation, error)
}

type GoogleServiceImpl struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleService(clientID string, clientSecret string, redirectURL string, scopes []string) *GoogleServiceImpl {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
	return &GoogleServiceImpl{config: config, userInfoURL: googleUserInfoURL}
}

type GoogleInformation struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

func (g *GoogleServiceImpl) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (g *GoogleServiceImpl) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *GoogleServiceImpl) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

func (g *GoogleServiceImpl) VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleInformation, error) {
	var info GoogleInformation

	client := g.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return GoogleInformation{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return GoogleInformation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleInformation{}, fmt.Errorf("google userinfo: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleInformation{}, err
	}
	if !info.VerifiedEmail {
		return GoogleInformation{}, ErrEmailNotVerified
	}

	return info, nil
}
