// Package auth handles the Google OAuth flow for the calendar sink. On first
// run it opens a local callback server and walks the user through the consent
// screen; afterwards the stored refresh token is used and re-saved whenever
// it rotates.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

var scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

// googleCredentials mirrors the JSON downloaded from Google Cloud Console.
type googleCredentials struct {
	Installed struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"installed"`
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"web"`
}

// LoadCredentials builds an oauth2 config from a credentials file. Both the
// "installed" and "web" layouts are accepted.
func LoadCredentials(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading credentials file")
	}
	var creds googleCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrap(err, "error parsing credentials file")
	}
	clientID, clientSecret := creds.Installed.ClientID, creds.Installed.ClientSecret
	if clientID == "" {
		clientID, clientSecret = creds.Web.ClientID, creds.Web.ClientSecret
	}
	if clientID == "" {
		return nil, errors.New("no client_id in credentials file")
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}, nil
}

// autoSaveTokenSource persists refreshed tokens so the user is not asked to
// re-consent after the access token expires.
type autoSaveTokenSource struct {
	source oauth2.TokenSource
	store  TokenStore
	last   *oauth2.Token
}

func (a *autoSaveTokenSource) Token() (*oauth2.Token, error) {
	token, err := a.source.Token()
	if err != nil {
		return nil, err
	}
	if a.last == nil || a.last.AccessToken != token.AccessToken {
		if err := a.store.SaveToken(token); err != nil {
			return nil, errors.Wrap(err, "error saving refreshed token")
		}
		a.last = token
	}
	return token, nil
}

// Client returns an authenticated HTTP client, running the interactive
// consent flow when no token is stored yet.
func Client(ctx context.Context, oauthCfg *oauth2.Config, store TokenStore) (*http.Client, error) {
	token, err := store.LoadToken()
	if err != nil {
		return nil, err
	}
	if token == nil {
		token, err = interactiveFlow(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := store.SaveToken(token); err != nil {
			return nil, err
		}
	}
	src := &autoSaveTokenSource{
		source: oauth2.ReuseTokenSource(token, oauthCfg.TokenSource(ctx, token)),
		store:  store,
		last:   token,
	}
	return oauth2.NewClient(ctx, src), nil
}

func interactiveFlow(ctx context.Context, oauthCfg *oauth2.Config) (*oauth2.Token, error) {
	redirectURL, codeCh, errCh, err := startCallbackServer()
	if err != nil {
		return nil, err
	}
	oauthCfg.RedirectURL = redirectURL

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Println("Visit the following URL to authorize the application:")
	fmt.Println(authURL)
	fmt.Println("Waiting for authorization...")

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		return nil, errors.New("authorization timeout")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "error exchanging authorization code")
	}
	return token, nil
}

// startCallbackServer listens on 127.0.0.1:8080, or a random port when 8080
// is taken, and hands back the code from the OAuth redirect.
func startCallbackServer() (string, <-chan string, <-chan error, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:8080")
	if err != nil {
		listener, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return "", nil, nil, errors.Wrap(err, "error starting callback server")
		}
	}
	redirectURL := fmt.Sprintf("http://127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	server := &http.Server{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		switch {
		case code != "":
			fmt.Fprint(w, "<html><body><h1>Authorization successful.</h1>You can close this window.</body></html>")
			codeCh <- code
		case r.URL.Query().Get("error") != "":
			fmt.Fprintf(w, "<html><body><h1>Authorization failed:</h1>%s</body></html>", r.URL.Query().Get("error"))
			errCh <- errors.Errorf("authorization error: %s", r.URL.Query().Get("error"))
		default:
			errCh <- errors.New("no authorization code received")
		}
		go func() {
			time.Sleep(time.Second)
			server.Shutdown(context.Background())
		}()
	})
	server.Handler = mux
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return redirectURL, codeCh, errCh, nil
}
