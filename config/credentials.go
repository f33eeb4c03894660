package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// DefaultCredentialsPath is where the hosting platform mounts the Firebase
// service account secret.
const DefaultCredentialsPath = "/etc/secrets/FIREBASE_KEY"

// ReadCredentials loads the document-store credential blob and checks that it
// is present, non-empty and a JSON object.
func ReadCredentials(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, configErr(keyCredentialsPath, "firebase secret file is missing: %s", path)
		}
		return nil, configErr(keyCredentialsPath, "reading firebase secret file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, configErr(keyCredentialsPath, "firebase secret file is empty: %s", path)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, configErr(keyCredentialsPath, "decoding firebase JSON: %w", err)
	}

	return data, nil
}
