package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/mbokatech/hall-management-backend/config"
	"google.golang.org/api/option"
)

var (
	firebaseApp   *firebase.App
	authClient    *fbauth.Client
	storageBucket *gcs.BucketHandle
	bucketName    string
	projectID     string
	once          sync.Once
	initErr       error
)

// InitFirebase initializes the identity + storage provider (singleton).
// The service keeps running without it: token verification and uploads
// return errors, everything else works.
func InitFirebase(cfg *config.Config) error {
	once.Do(func() {
		ctx := context.Background()

		credentialsPath := cfg.FirebaseCredentialsPath
		if credentialsPath == "" {
			credentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		}
		projectID = cfg.FirebaseProjectID
		bucketName = cfg.StorageBucket

		if credentialsPath == "" {
			initErr = fmt.Errorf("firebase credentials not configured")
			return
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		fbConfig := &firebase.Config{
			ProjectID:     projectID,
			StorageBucket: bucketName,
		}

		opt := option.WithCredentialsFile(credentialsPath)
		app, err := firebase.NewApp(ctx, fbConfig, opt)
		if err != nil {
			initErr = fmt.Errorf("firebase app initialization failed: %w", err)
			return
		}
		firebaseApp = app

		client, err := app.Auth(ctx)
		if err != nil {
			initErr = fmt.Errorf("firebase auth client failed: %w", err)
			return
		}
		authClient = client
		log.Println("✅ Identity provider client initialized")

		if bucketName != "" {
			storageClient, err := app.Storage(ctx)
			if err != nil {
				log.Printf("⚠️ Storage client unavailable: %v", err)
				return
			}
			bucket, err := storageClient.Bucket(bucketName)
			if err != nil {
				log.Printf("⚠️ Storage bucket handle failed: %v", err)
				return
			}
			storageBucket = bucket
			log.Printf("✅ Storage bucket ready: %s", bucketName)
		}
	})

	return initErr
}

// IsIdentityEnabled reports whether provider token verification is available
func IsIdentityEnabled() bool {
	return authClient != nil
}

// VerifyIDToken verifies a provider bearer token and returns its claims
func VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if authClient == nil {
		return nil, fmt.Errorf("identity provider not initialized")
	}
	return authClient.VerifyIDToken(ctx, idToken)
}

// GetProviderUser fetches the provider's user record for a subject id
func GetProviderUser(ctx context.Context, uid string) (*fbauth.UserRecord, error) {
	if authClient == nil {
		return nil, fmt.Errorf("identity provider not initialized")
	}
	return authClient.GetUser(ctx, uid)
}

// EnsureBucket creates the storage bucket when it does not exist yet
func EnsureBucket(ctx context.Context) error {
	if storageBucket == nil {
		return fmt.Errorf("storage not initialized")
	}
	_, err := storageBucket.Attrs(ctx)
	if err == gcs.ErrBucketNotExist {
		log.Printf("🔄 Creating storage bucket %s", bucketName)
		return storageBucket.Create(ctx, projectID, nil)
	}
	return err
}

// UploadObject streams an object into the bucket and returns its public URL
func UploadObject(ctx context.Context, objectName, contentType string, src io.Reader) (string, error) {
	if storageBucket == nil {
		return "", fmt.Errorf("storage not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	obj := storageBucket.Object(objectName)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object: %w", err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		// uniform bucket-level access rejects per-object ACLs
		log.Printf("⚠️ Could not set public ACL on %s: %v", objectName, err)
	}

	return PublicObjectURL(objectName), nil
}

// PublicObjectURL builds the public URL for an uploaded object
func PublicObjectURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName)
}
