package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/oauth"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/core/services"
)

// CallbackTimeout bounds how long --listen waits for the browser redirect.
var CallbackTimeout = 5 * time.Minute

var (
	setupListen    bool
	setupPort      int
	setupNoBrowser bool
	setupSave      bool
)

var generateRefreshTokenCmd = &cobra.Command{
	Use:   "generate-refresh-token",
	Short: "Obtain a long-lived YouTube refresh token",
	Long: `Runs the one-time OAuth consent flow for the configured client id and
secret and prints the resulting refresh token as YOUTUBE_REFRESH_TOKEN=...

By default the consent page redirects to the configured redirect URI, whose
page shows the authorization code to paste back here. With --listen a local
callback server captures the code instead; its address must be an
authorized redirect URI of the OAuth client.

If Google returns no refresh token the app was already authorized. Revoke
its access at ` + services.RevokeAccessURL + ` and run again.`,
	Args: cobra.NoArgs,
	RunE: runGenerateRefreshToken,
}

func init() {
	generateRefreshTokenCmd.Flags().BoolVar(&setupListen, "listen", false, "capture the code on a local callback server")
	generateRefreshTokenCmd.Flags().IntVar(&setupPort, "port", 0, "callback port for --listen (default: from redirect URI)")
	generateRefreshTokenCmd.Flags().BoolVar(&setupNoBrowser, "no-browser", false, "do not open the browser")
	generateRefreshTokenCmd.Flags().BoolVar(&setupSave, "save", false, "store the refresh token in config.toml")
	youtubeCmd.AddCommand(generateRefreshTokenCmd)
}

func runGenerateRefreshToken(cmd *cobra.Command, _ []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	settings := s.Settings.YouTube()
	if err := settings.RequireClientCredentials(); err != nil {
		return fmt.Errorf("%w: set YOUTUBE_CLIENT_ID and YOUTUBE_CLIENT_SECRET", err)
	}

	var (
		setup driving.RefreshTokenSetup
		code  string
	)
	if setupListen {
		setup, code, err = listenForCode(cmd, s, settings)
	} else {
		setup, code, err = pasteCode(cmd, s, settings)
	}
	if err != nil {
		return err
	}

	return finishSetup(cmd, s, setup, code)
}

func pasteCode(cmd *cobra.Command, s *Services, settings domain.YouTubeSettings) (driving.RefreshTokenSetup, string, error) {
	setup := s.NewSetup(settings.RedirectURI)
	authURL, _, err := setup.Start()
	if err != nil {
		return nil, "", err
	}

	showAuthURL(cmd, authURL)
	cmd.Print("Paste the authorization code: ")
	code := readSecret(cmd.InOrStdin())
	cmd.Println()
	if code == "" {
		return nil, "", services.ErrEmptyAuthorizationCode
	}
	return setup, code, nil
}

func listenForCode(cmd *cobra.Command, s *Services, settings domain.YouTubeSettings) (driving.RefreshTokenSetup, string, error) {
	port, err := callbackPort(setupPort, settings.RedirectURI)
	if err != nil {
		return nil, "", err
	}

	redirectURI := fmt.Sprintf("http://localhost:%d%s", port, oauth.DefaultCallbackPath)
	setup := s.NewSetup(redirectURI)
	authURL, state, err := setup.Start()
	if err != nil {
		return nil, "", err
	}

	server := oauth.NewCallbackServer(port, state)
	if err := server.Start(); err != nil {
		return nil, "", err
	}
	defer server.Stop() //nolint:errcheck

	cmd.Printf("Waiting for the authorization callback on %s\n", server.RedirectURI())
	cmd.Println("This URI must be listed as an authorized redirect URI of the OAuth client.")
	showAuthURL(cmd, authURL)

	ctx, cancel := context.WithTimeout(cmd.Context(), CallbackTimeout)
	defer cancel()
	code, err := server.WaitForCode(ctx)
	if err != nil {
		return nil, "", err
	}
	return setup, code, nil
}

func showAuthURL(cmd *cobra.Command, authURL string) {
	cmd.Println()
	cmd.Println("Open this URL in your browser and grant read-only access to YouTube:")
	cmd.Println()
	cmd.Printf("  %s\n", authURL)
	cmd.Println()

	if setupNoBrowser {
		return
	}
	if err := oauth.OpenBrowser(authURL); err != nil {
		cmd.Printf("Could not open a browser (%v); open the URL manually.\n\n", err)
	}
}

func finishSetup(cmd *cobra.Command, s *Services, setup driving.RefreshTokenSetup, code string) error {
	token, err := setup.Complete(cmd.Context(), code)
	if errors.Is(err, domain.ErrNoRefreshTokenIssued) {
		cmd.Println("Google did not return a refresh token because this app was authorized before.")
		cmd.Printf("Revoke its access at %s and run this command again.\n", services.RevokeAccessURL)
		return err
	}
	if err != nil {
		return err
	}

	cmd.Println("Add this to your environment or .env file:")
	cmd.Println()
	cmd.Printf("YOUTUBE_REFRESH_TOKEN=%s\n", token)

	if !setupSave {
		return nil
	}
	if err := s.Settings.SaveRefreshToken(token); err != nil {
		return err
	}
	cmd.Println()
	if s.ConfigPath != "" {
		cmd.Printf("Saved to %s\n", s.ConfigPath)
	} else {
		cmd.Println("Saved.")
	}
	if s.Settings.RefreshTokenOverridden() {
		cmd.Println("YOUTUBE_REFRESH_TOKEN is set in the environment and still takes precedence.")
	}
	return nil
}

// callbackPort picks the --listen port: the flag, then a loopback redirect
// URI's port, then the first free port in 8085-8185.
func callbackPort(flagPort int, redirectURI string) (int, error) {
	if flagPort > 0 {
		return flagPort, nil
	}
	if u, err := url.Parse(redirectURI); err == nil && isLoopback(u.Hostname()) {
		if p, err := strconv.Atoi(u.Port()); err == nil && p > 0 {
			return p, nil
		}
	}
	return oauth.FindAvailablePort(8085, 8185)
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// readSecret reads one line, hiding input when r is an interactive
// terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(r io.Reader) string {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimSpace(line)
}
