package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/config"
	"github.com/kraigochieng/4th-year-project/internal/ui/signup"
	"github.com/kraigochieng/4th-year-project/internal/ui/styles"
)

var (
	loginPassword  string
	signupPassword string
	signupFirst    string
	signupLast     string
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the session tokens",
	Long: `Exchange a username and password for an access and refresh token.
The password is prompted for when --password is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			var err error
			if password, err = promptPassword(); err != nil {
				return err
			}
		}
		exit(runLogin(commandContext(cmd), os.Stdout, cfg, args[0], password))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		exit(runLogout(commandContext(cmd), os.Stdout, cfg))
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <username>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := signupPassword
		if password == "" {
			var err error
			if password, err = promptPassword(); err != nil {
				return err
			}
		}
		req := api.SignupRequest{
			Username:  args[0],
			Password:  password,
			FirstName: signupFirst,
			LastName:  signupLast,
		}
		exit(runSignup(commandContext(cmd), os.Stdout, cfg, req))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "Password (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupFirst, "first-name", "", "First name")
	signupCmd.Flags().StringVar(&signupLast, "last-name", "", "Last name")

	rootCmd.AddCommand(loginCmd, logoutCmd, signupCmd)
}

func promptPassword() (string, error) {
	var password string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	).WithTheme(styles.FormTheme()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", errors.New("aborted")
	}
	return password, err
}

// runLogin logs in and returns the exit code.
func runLogin(ctx context.Context, w io.Writer, cfg *config.Config, username, password string) int {
	s, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	defer s.Close()

	if err := s.store.Login(ctx, api.Credentials{Username: username, Password: password}); err != nil {
		fmt.Fprintf(w, "Login failed: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		writeJSON(w, map[string]any{
			"username":   username,
			"state":      s.store.State().String(),
			"token_type": s.store.TokenType(),
			"location":   s.router.Current(),
		})
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", username)
	}
	return exitOK
}

// runLogout clears the session and returns the exit code.
func runLogout(ctx context.Context, w io.Writer, cfg *config.Config) int {
	s, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	defer s.Close()

	s.store.Logout(ctx)
	if jsonOutput {
		writeJSON(w, map[string]any{"state": s.store.State().String()})
	} else {
		fmt.Fprintln(w, "Logged out")
	}
	return exitOK
}

// runSignup registers an account and returns the exit code.
func runSignup(ctx context.Context, w io.Writer, cfg *config.Config, req api.SignupRequest) int {
	if err := signup.Validate(req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	defer s.Close()

	body, err := s.store.Signup(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Signup failed: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		fmt.Fprintln(w, string(body))
	} else {
		fmt.Fprintf(w, "Account %s created. Run 'adrctl login %s' to sign in.\n", req.Username, req.Username)
	}
	return exitOK
}

func writeJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}
