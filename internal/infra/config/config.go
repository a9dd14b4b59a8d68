// backend/internal/infra/config/config.go
package config

import (
	"os"
	"strings"
)

// Config holds every environment-driven setting for the service.
type Config struct {
	Port                     string
	GCSBucket                string
	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// CORS allowlist for the storefront origins, comma separated.
	AllowedOrigins []string

	// Mercado Pago access. The token can come straight from the env or,
	// when empty, be resolved from Secret Manager by name.
	MPAccessToken     string
	MPTokenSecretName string
	MPBaseURL         string

	// URLs stamped onto checkout preferences.
	NotificationURL string
	BackURLSuccess  string
	BackURLFailure  string
	BackURLPending  string

	// SendGrid (optional; mail is skipped when the key is empty).
	SendGridAPIKey string
	MailFrom       string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "coliseum-shop")

	cfg := &Config{
		Port:                     getenvDefault("PORT", "8080"),
		GCSBucket:                os.Getenv("GCS_BUCKET"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),

		MPAccessToken:     os.Getenv("MP_ACCESS_TOKEN"),
		MPTokenSecretName: os.Getenv("MP_TOKEN_SECRET_NAME"),
		MPBaseURL:         os.Getenv("MP_BASE_URL"),

		NotificationURL: os.Getenv("MP_NOTIFICATION_URL"),
		BackURLSuccess:  os.Getenv("CHECKOUT_BACK_URL_SUCCESS"),
		BackURLFailure:  os.Getenv("CHECKOUT_BACK_URL_FAILURE"),
		BackURLPending:  os.Getenv("CHECKOUT_BACK_URL_PENDING"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("MAIL_FROM", "no-reply@coliseum.shop"),
	}

	return cfg
}

// GetFirestoreProjectID returns the Firestore/GCP project ID.
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// GetFirebaseProjectID returns the project ID used for Firebase Auth.
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
