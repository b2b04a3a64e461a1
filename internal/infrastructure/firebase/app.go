package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewApp builds the Firebase app from inline JSON credentials, a credentials file, or
// application default credentials, in that order.
func NewApp(ctx context.Context, projectID, credentialsJSON, credentialsPath, bucket string) (*firebase.App, error) {
	opts := ClientOptions(credentialsJSON, credentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: bucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	return app, nil
}

// ClientOptions returns the same credentials for clients built outside the app.
func ClientOptions(credentialsJSON, credentialsPath string) []option.ClientOption {
	switch {
	case credentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credentialsJSON))}
	case credentialsPath != "":
		return []option.ClientOption{option.WithCredentialsFile(credentialsPath)}
	}
	return nil
}
