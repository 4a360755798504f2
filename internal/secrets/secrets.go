// Package secrets handles Firebase service account credentials: validating
// them, materializing them to disk for the lifetime of a single job run, and
// encoding them for storage as CI secrets. Materialized files must never
// outlive the run, whether it succeeds or fails.
package secrets

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Credentials is a materialized service account ready for client construction.
type Credentials struct {
	Path      string
	ProjectID string

	owned bool
}

type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Materialize resolves credentials from either an existing file path or a
// base64-encoded payload. When decoding from base64 a temp file is created
// and owned by the returned Credentials; Cleanup removes it. A pre-existing
// file named by path is used as-is and never deleted.
func Materialize(path, b64 string) (*Credentials, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read credentials file: %w", err)
			}
			account, err := parseServiceAccount(data)
			if err != nil {
				return nil, err
			}
			return &Credentials{Path: path, ProjectID: account.ProjectID}, nil
		}
	}

	if b64 == "" {
		return nil, fmt.Errorf("no credentials: file %q not found and no base64 payload set", path)
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 credentials: %w", err)
	}

	account, err := parseServiceAccount(data)
	if err != nil {
		return nil, err
	}

	file, err := os.CreateTemp("", "firebase-credentials-*.json")
	if err != nil {
		return nil, fmt.Errorf("create credentials file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, fmt.Errorf("write credentials file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return nil, fmt.Errorf("close credentials file: %w", err)
	}

	return &Credentials{Path: file.Name(), ProjectID: account.ProjectID, owned: true}, nil
}

// Cleanup removes the materialized file when this process created it. Safe to
// call multiple times and on every exit path.
func (c *Credentials) Cleanup() error {
	if c == nil || !c.owned || c.Path == "" {
		return nil
	}
	err := os.Remove(c.Path)
	c.Path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

func parseServiceAccount(data []byte) (serviceAccount, error) {
	var account serviceAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return account, fmt.Errorf("credentials are not valid JSON: %w", err)
	}
	if account.Type != "service_account" {
		return account, fmt.Errorf("credentials type is %q, want service_account", account.Type)
	}
	if account.ProjectID == "" {
		return account, fmt.Errorf("credentials are missing project_id")
	}
	return account, nil
}

// EncodeCredentialsFile finds a Firebase admin SDK key in dir matching
// *-firebase-adminsdk-*.json and returns its filename and base64 encoding.
func EncodeCredentialsFile(dir string) (string, string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*-firebase-adminsdk-*.json"))
	if err != nil {
		return "", "", fmt.Errorf("glob credentials: %w", err)
	}
	if len(matches) == 0 {
		return "", "", fmt.Errorf("no file matching *-firebase-adminsdk-*.json in %s", dir)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", matches[0], err)
	}
	if _, err := parseServiceAccount(data); err != nil {
		return "", "", err
	}

	return filepath.Base(matches[0]), base64.StdEncoding.EncodeToString(data), nil
}

// RequiredEnvVars are the variables an operator must set before the jobs can
// run in CI.
var RequiredEnvVars = []string{
	"OPENAI_API_KEY",
	"SMTP_USERNAME",
	"SMTP_PASSWORD",
	"EMAIL_FROM",
	"EMAIL_RECIPIENTS",
}

// CheckEnvFile verifies that the named .env file defines every required
// variable and returns the missing ones.
func CheckEnvFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	var missing []string
	for _, v := range RequiredEnvVars {
		found := false
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), v+"=") {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, v)
		}
	}
	return missing, nil
}
