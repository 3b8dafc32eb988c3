package auth

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// TokenStore saves and loads OAuth tokens between runs.
type TokenStore interface {
	SaveToken(token *oauth2.Token) error
	LoadToken() (*oauth2.Token, error)
}

// FileTokenStore keeps the token in a JSON file.
type FileTokenStore struct {
	Path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{Path: path}
}

func (s *FileTokenStore) SaveToken(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return errors.Wrap(err, "error marshaling token")
	}
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return errors.Wrap(err, "error writing token file")
	}
	return nil
}

// LoadToken returns nil, nil when no token has been stored yet.
func (s *FileTokenStore) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error reading token file")
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, errors.Wrap(err, "error parsing token file")
	}
	return &token, nil
}
