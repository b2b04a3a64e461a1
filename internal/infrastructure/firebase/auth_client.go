package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// TokenInfo is the part of a verified ID token the API relies on.
type TokenInfo struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (*TokenInfo, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	info := &TokenInfo{UID: result.UID}
	if email, ok := result.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := result.Claims["name"].(string); ok {
		info.DisplayName = name
	}
	if picture, ok := result.Claims["picture"].(string); ok {
		info.PhotoURL = picture
	}
	return info, nil
}

// CustomToken mints a token a client can exchange for an ID token. Only exposed in
// development.
func (f *FirebaseAuthClient) CustomToken(ctx context.Context, uid string) (string, error) {
	return f.client.CustomToken(ctx, uid)
}
