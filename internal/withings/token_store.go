package withings

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// TokenStore keeps the OAuth token set in a local JSON file. The file
// must survive between runs: the vendor rotates the refresh token on
// every exchange and the old one dies with it.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{
		path: path,
	}
}

func (s *TokenStore) Load() (*Tokens, error) {
	tokensBytes, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read tokens file %s: %w", s.path, err)
	}

	tokens := &Tokens{}
	if err := json.Unmarshal(tokensBytes, tokens); err != nil {
		return nil, fmt.Errorf("parse tokens file %s: %w", s.path, err)
	}
	if tokens.RefreshToken == "" {
		return nil, fmt.Errorf("tokens file %s holds no refresh token", s.path)
	}
	return tokens, nil
}

func (s *TokenStore) Save(tokens *Tokens) error {
	tokensJson, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tokens: %w", err)
	}

	// tokens are credentials, keep the file owner-only
	if err := os.WriteFile(s.path, tokensJson, 0o600); err != nil {
		return fmt.Errorf("write tokens file %s: %w", s.path, err)
	}

	log.Debugf("token set saved to %s", s.path)
	return nil
}
