package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvSenderAddress    = "EMAIL_ADDRESS"
	EnvSenderPassword   = "EMAIL_PASSWORD"
	EnvRecipientAddress = "RECIPIENT_EMAIL"
)

// Credentials are the mail secrets supplied out-of-band.
type Credentials struct {
	Sender    string
	Password  string
	Recipient string
}

// Complete reports whether every value is present.
func (c Credentials) Complete() bool {
	return c.Sender != "" && c.Password != "" && c.Recipient != ""
}

// LoadCredentials reads the mail credentials from the environment after
// loading envFile (if it exists). Values already set in the environment win.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Credentials{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	return Credentials{
		Sender:    os.Getenv(EnvSenderAddress),
		Password:  os.Getenv(EnvSenderPassword),
		Recipient: os.Getenv(EnvRecipientAddress),
	}, nil
}
