// ABOUTME: Google Calendar CLI commands
// ABOUTME: Handles OAuth setup and exporting accepted meetings as calendar events
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/harperreed/bizlink/calsync"
	"golang.org/x/oauth2"
)

// CalendarCommand routes `bizlink calendar <auth|export>`.
func CalendarCommand(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("calendar requires a subcommand (auth, export)")
	}
	switch args[0] {
	case "auth":
		return calendarAuth(ctx, env, args[1:])
	case "export":
		return calendarExport(ctx, env, args[1:])
	default:
		return unknownSubcommand("calendar", args[0])
	}
}

// calendarAuth runs the OAuth flow through a local callback server.
func calendarAuth(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("calendar auth")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config, err := calsync.NewOAuthConfig(env.Config)
	if err != nil {
		return err
	}

	callbackChan := make(chan *oauth2.Token, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)

	_, _ = fmt.Fprintln(stdout, "Opening browser for Google OAuth...")
	_, _ = fmt.Fprintf(stdout, "\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)
	_ = openBrowser(authURL)

	select {
	case token := <-callbackChan:
		_ = server.Shutdown(ctx)

		if err := calsync.SaveToken(env.Config.TokenPath, token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		_, _ = fmt.Fprintf(stdout, "\n✓ Authenticated successfully\n")
		_, _ = fmt.Fprintf(stdout, "✓ Tokens saved to %s\n\n", env.Config.TokenPath)
		_, _ = fmt.Fprintln(stdout, "Run 'bizlink --as <you> calendar export' to push your accepted meetings.")
		return nil

	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return fmt.Errorf("OAuth flow failed: %w", err)

	case <-ctx.Done():
		_ = server.Shutdown(context.Background())
		return ctx.Err()
	}
}

func calendarExport(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("calendar export")
	calendarID := fs.String("calendar", env.Config.CalendarID, "Target calendar id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	actor, err := env.actor()
	if err != nil {
		return err
	}

	config, err := calsync.NewOAuthConfig(env.Config)
	if err != nil {
		return err
	}
	token, err := calsync.LoadToken(env.Config.TokenPath)
	if err != nil {
		return fmt.Errorf("no authentication token found. Run 'bizlink calendar auth' first: %w", err)
	}
	service, err := calsync.NewCalendarClient(ctx, config, token)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(stdout, "Exporting accepted meetings to Google Calendar...")
	result, err := calsync.NewExporter(env.Svc, calsync.NewGoogleCalendar(service), *calendarID).Export(ctx, actor)
	if err != nil {
		return fmt.Errorf("calendar export failed: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "✓ %d created, %d updated", result.Created, result.Updated)
	if result.Failed > 0 {
		_, _ = fmt.Fprintf(stdout, ", %d failed (see log)", result.Failed)
	}
	_, _ = fmt.Fprintln(stdout)
	return nil
}

// openBrowser attempts to open URL in default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}
