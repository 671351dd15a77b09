// Package main is a command-line client for sessiondesk. It keeps the signed-in
// session in an encrypted state file between runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keyxmakerx/sessiondesk/internal/client/api"
	"github.com/keyxmakerx/sessiondesk/internal/client/guard"
	"github.com/keyxmakerx/sessiondesk/internal/client/persist"
	"github.com/keyxmakerx/sessiondesk/internal/client/state"
)

// devPersistKey is used when SESSIONDESK_PERSIST_KEY is unset.
const devPersistKey = "sessiondesk-dev-persist-key-change-me"

// commands maps each subcommand to whether it needs a signed-in session.
var commands = map[string]bool{
	"sign-up":     false,
	"sign-in":     false,
	"sign-out":    true,
	"whoami":      true,
	"update-name": true,
	"sessions":    true,
	"revoke":      true,
	"todos":       false,
}

type cli struct {
	client   *api.Client
	store    *state.Store
	email    string
	password string
	name     string
	id       string
}

func main() {
	cmd := flag.String("cmd", "whoami", "Command: sign-up|sign-in|sign-out|whoami|update-name|sessions|revoke|todos")
	server := flag.String("server", "", "Server base URL (default $SESSIONDESK_SERVER or http://localhost:8080)")
	stateDir := flag.String("state-dir", "", "Directory for the encrypted state file (default $SESSIONDESK_STATE_DIR or user config dir)")
	email := flag.String("email", "", "Email (sign-up, sign-in)")
	password := flag.String("password", "", "Password (sign-up, sign-in)")
	name := flag.String("name", "", "Display name (sign-up, update-name)")
	id := flag.String("id", "", "Session ID (revoke)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	requireAuth, ok := commands[*cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *cmd)
		os.Exit(2)
	}

	c, err := setup(*server, *stateDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	c.email, c.password, c.name, c.id = *email, *password, *name, *id

	// sign-in and sign-up are guest-only screens in the web client; the CLI
	// lets an already signed-in user switch accounts, so only protected
	// commands are guarded.
	if requireAuth {
		if d := guard.Check(true, c.store.Snapshot().IsAuthenticated, ""); !d.Allow {
			fmt.Fprintf(os.Stderr, "Not signed in. Run with -cmd sign-in (redirect: %s)\n", d.RedirectTo)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.run(ctx, *cmd); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup resolves configuration, rehydrates the persisted state and wires the
// persistor to the store.
func setup(serverFlag, stateDirFlag string) (*cli, error) {
	baseURL := "http://localhost:8080"
	if env := os.Getenv("SESSIONDESK_SERVER"); env != "" {
		baseURL = env
	}
	if serverFlag != "" {
		baseURL = serverFlag
	}

	key := os.Getenv("SESSIONDESK_PERSIST_KEY")
	if key == "" {
		slog.Warn("SESSIONDESK_PERSIST_KEY not set, using development key")
		key = devPersistKey
	}
	enc, err := persist.NewEncryptor(key)
	if err != nil {
		return nil, err
	}

	var storage persist.Storage = persist.NoopStorage{}
	if dir := stateDirectory(stateDirFlag); dir != "" {
		storage = persist.NewFileStorage(dir)
	} else {
		slog.Warn("no state directory available, session will not be remembered")
	}

	p := persist.NewPersistor(storage, enc)
	store := state.NewStore(p.Rehydrate())
	p.Attach(store)

	return &cli{client: api.New(baseURL), store: store}, nil
}

// stateDirectory picks the flag, then SESSIONDESK_STATE_DIR, then
// <user config dir>/sessiondesk. Returns "" if none is available.
func stateDirectory(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv("SESSIONDESK_STATE_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "sessiondesk")
	}
	return ""
}

func (c *cli) run(ctx context.Context, cmd string) error {
	switch cmd {
	case "sign-up":
		resp, err := c.client.SignUp(ctx, api.SignUpParams{Email: c.email, Password: c.password, Name: c.name})
		if err != nil {
			return err
		}
		c.signedIn(resp)
		fmt.Printf("Signed up as %s <%s>\n", resp.User.Name, resp.User.Email)

	case "sign-in":
		resp, err := c.client.SignIn(ctx, api.SignInParams{Email: c.email, Password: c.password})
		if err != nil {
			return err
		}
		c.signedIn(resp)
		fmt.Printf("Signed in as %s <%s>\n", resp.User.Name, resp.User.Email)

	case "sign-out":
		err := c.client.SignOut(ctx, c.store.Snapshot().Token)
		// The local session ends either way.
		c.store.Dispatch(state.LoggedOut{})
		if err != nil {
			return err
		}
		fmt.Println("Signed out")

	case "whoami":
		u, err := c.authed().CurrentUser(ctx)
		if err != nil {
			return c.handleAuthError(err)
		}
		fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, u.ID)

	case "update-name":
		u, err := c.authed().UpdateName(ctx, c.name)
		if err != nil {
			return c.handleAuthError(err)
		}
		// Keep the local snapshot in step with the server.
		c.store.Dispatch(state.SignedIn{User: state.User(*u), Token: c.store.Snapshot().Token})
		fmt.Printf("Name updated to %q\n", u.Name)

	case "sessions":
		list, err := c.authed().Sessions(ctx)
		if err != nil {
			return c.handleAuthError(err)
		}
		current := c.store.Snapshot().Token
		for _, s := range list {
			marker := " "
			if s.Token == current {
				marker = "*"
			}
			fmt.Printf("%s %s  expires %s  %s  %s\n", marker, s.ID,
				s.ExpiresAt.Local().Format(time.RFC3339), deref(s.IPAddress), deref(s.UserAgent))
		}

	case "revoke":
		if c.id == "" {
			return errors.New("-id required")
		}
		if err := c.authed().RevokeSession(ctx, c.id); err != nil {
			return c.handleAuthError(err)
		}
		fmt.Println("Session revoked")

	case "todos":
		todos, err := c.client.Todos(ctx)
		if err != nil {
			return err
		}
		for _, t := range todos {
			box := "[ ]"
			if t.Done {
				box = "[x]"
			}
			fmt.Printf("%s %d %s\n", box, t.ID, t.Title)
		}
	}
	return nil
}

func (c *cli) authed() *api.Client {
	return c.client.WithToken(c.store.Snapshot().Token)
}

func (c *cli) signedIn(resp *api.AuthResponse) {
	c.store.Dispatch(state.SignedIn{User: state.User(resp.User), Token: resp.Session.Token})
}

// handleAuthError logs the user out locally when the server rejects the
// stored token.
func (c *cli) handleAuthError(err error) error {
	if api.IsUnauthenticated(err) {
		c.store.Dispatch(state.LoggedOut{})
		return fmt.Errorf("session is no longer valid, please sign in again: %w", err)
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return strings.TrimSpace(*s)
}
