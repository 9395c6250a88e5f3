package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/shinji-kodama/release-publisher/internal/model"
)

// Environment variables that pre-fill upload credentials.
const (
	EnvUsername = "RELEASE_PUBLISHER_USERNAME"
	EnvPassword = "RELEASE_PUBLISHER_PASSWORD"
)

// DotEnvFile is the optional credentials file in the release root.
const DotEnvFile = ".env"

// LoadCredentials collects whatever credentials are available without
// prompting: the process environment first, then <root>/.env. Missing
// fields stay empty for the caller to prompt for.
//
// The .env file is parsed with godotenv.Read, which returns the values
// without exporting them into the process environment.
func LoadCredentials(root string) (model.Credentials, error) {
	creds := model.Credentials{
		Username: os.Getenv(EnvUsername),
		Password: os.Getenv(EnvPassword),
	}
	if creds.IsComplete() {
		return creds, nil
	}

	values, err := godotenv.Read(filepath.Join(root, DotEnvFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return creds, nil
		}
		return creds, &model.FileAccessError{Path: filepath.Join(root, DotEnvFile), Op: "read", Err: err}
	}

	if creds.Username == "" {
		creds.Username = values[EnvUsername]
	}
	if creds.Password == "" {
		creds.Password = values[EnvPassword]
	}
	return creds, nil
}
