package auth

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "token.json"))
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
	if err := store.SaveToken(token); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadToken()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("loaded token is nil")
	}
	if loaded.AccessToken != token.AccessToken || loaded.RefreshToken != token.RefreshToken {
		t.Fatalf("token altered: %+v", loaded)
	}
}

func TestFileTokenStoreMissingFile(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "absent.json"))
	token, err := store.LoadToken()
	if err != nil {
		t.Fatal(err)
	}
	// First run: no token yet is not an error.
	if token != nil {
		t.Fatalf("want nil token, got %+v", token)
	}
}
