package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/config"
	"github.com/kraigochieng/4th-year-project/internal/render"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Long:  `Refresh the access token if it is about to expire, then fetch the current user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exit(runWhoami(commandContext(cmd), os.Stdout, cfg))
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the refresh token for a new access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		exit(runRefresh(commandContext(cmd), os.Stdout, cfg))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session without contacting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		exit(runStatus(commandContext(cmd), os.Stdout, cfg, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd, refreshCmd, statusCmd)
}

func notLoggedIn(w io.Writer) int {
	fmt.Fprintln(w, "Not logged in. Run 'adrctl login <username>'.")
	return exitFailure
}

// runWhoami prints the current user and returns the exit code.
func runWhoami(ctx context.Context, w io.Writer, cfg *config.Config) int {
	s, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	defer s.Close()

	if !s.store.LoggedIn() {
		return notLoggedIn(w)
	}
	if err := s.store.EnsureFresh(ctx); err != nil {
		if !s.store.LoggedIn() {
			fmt.Fprintf(w, "Session expired: %v\n", err)
			return exitFailure
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	user, err := s.store.FetchUser(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		fmt.Fprintln(w, string(user.Raw))
		return exitOK
	}
	fmt.Fprintf(w, "Username: %s\n", user.Username)
	if name := user.DisplayName(); name != user.Username {
		fmt.Fprintf(w, "Name:     %s\n", name)
	}
	if user.ID != "" {
		fmt.Fprintf(w, "ID:       %s\n", user.ID)
	}
	return exitOK
}

// runRefresh refreshes the access token and returns the exit code.
func runRefresh(ctx context.Context, w io.Writer, cfg *config.Config) int {
	s, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	defer s.Close()

	if err := s.store.Refresh(ctx); err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			return notLoggedIn(w)
		}
		if !s.store.LoggedIn() {
			fmt.Fprintf(w, "Refresh token rejected, logged out: %v\n", err)
			return exitFailure
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		writeJSON(w, map[string]any{"refreshed": true, "state": s.store.State().String()})
	} else {
		fmt.Fprintln(w, "Access token refreshed")
	}
	return exitOK
}

// runStatus prints the stored session and returns the exit code. It never
// contacts the API.
func runStatus(ctx context.Context, w io.Writer, cfg *config.Config, now time.Time) int {
	s, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	defer s.Close()

	access := s.store.AccessToken()
	exp, hasExp := auth.TokenExpiry(access)
	subject := auth.TokenSubject(access)

	if jsonOutput {
		out := map[string]any{
			"state":   s.store.State().String(),
			"api":     cfg.API.BaseURL,
			"storage": cfg.Storage.Backend,
		}
		if subject != "" {
			out["subject"] = subject
		}
		if hasExp {
			out["expires_at"] = exp.UTC().Format(time.RFC3339)
		}
		writeJSON(w, out)
		return exitOK
	}

	fmt.Fprintf(w, "State:    %s\n", s.store.State())
	fmt.Fprintf(w, "API:      %s\n", cfg.API.BaseURL)
	fmt.Fprintf(w, "Storage:  %s\n", cfg.Storage.Backend)
	if subject != "" {
		fmt.Fprintf(w, "Subject:  %s\n", subject)
	}
	if hasExp {
		fmt.Fprintf(w, "Token:    %s\n", render.Remaining(exp.Sub(now)))
	}
	return exitOK
}
