package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"dms-go/internal/app"
	"dms-go/internal/config"
	"dms-go/internal/dms"
	"dms-go/internal/encryption"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a DMSApp. The caller must defer app.Close().
// command identifies the CLI command being run (e.g. "login", "documents upload").
func newApp(ctx context.Context, command, parameters string) (*app.DMSApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config (run 'dms config init' first): %w", err)
	}

	a, err := app.NewDMSApp(ctx, cfg, command, parameters)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// withApp runs fn against a fresh DMSApp and records its outcome.
func withApp(cmd *cobra.Command, parameters string, fn func(ctx context.Context, a *app.DMSApp) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd.CommandPath(), parameters)
	if err != nil {
		return err
	}
	err = fn(ctx, a)
	a.Fail(err)
	if closeErr := a.Close(); err == nil {
		err = closeErr
	}
	return err
}

// explain turns a controller error into what the user should read.
// Redirects are reported by where they lead.
func explain(a *app.DMSApp, err error, status dms.StatusMessage) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, dms.ErrRedirected) {
		switch a.Navigator().Last() {
		case dms.RouteLogin:
			return errors.New("not signed in: run 'dms login' or 'dms register'")
		case dms.RouteDashboard:
			return errors.New("this command requires the admin role")
		}
	}
	if status.Kind == dms.StatusError && status.Text != "" {
		return errors.New(status.Text)
	}
	var remote *dms.RemoteError
	var invalid *dms.ValidationError
	if errors.As(err, &remote) || errors.As(err, &invalid) {
		return errors.New(dms.UserMessage(err, dms.MsgGenericError))
	}
	return err
}

// authError prefers the message shown on the login or register form.
func authError(err error, view dms.AuthView) error {
	if view.Error != "" {
		return errors.New(view.Error)
	}
	return err
}

var rootCmd = &cobra.Command{
	Use:           "dms",
	Short:         "Document management client",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.APIURL, defaults.BaseDir)
		if v, _ := cmd.Flags().GetString("api-url"); v != "" {
			cfg.APIURL = v
		}
		if v, _ := cmd.Flags().GetString("storage"); v != "" {
			cfg.Storage.Type = v
			if v == "sqlite" {
				cfg.Storage.Path = strings.TrimSuffix(cfg.Storage.Path, ".toml") + ".db"
			}
		}
		if encrypt, _ := cmd.Flags().GetBool("encrypt"); encrypt {
			cfg.Encryption.Type = "age"
		}

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return err
		}
		if !enc.IsConfigured() {
			if err := enc.Setup(); err != nil {
				return fmt.Errorf("failed to create encryption identity: %w", err)
			}
			fmt.Printf("Encryption identity: %s\n", cfg.Encryption.IdentityPath)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("API URL:  %s\n", cfg.APIURL)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		return renderConfig(os.Stdout, cfg)
	},
}

// home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show whether you are signed in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "", func(ctx context.Context, a *app.DMSApp) error {
			if a.Home().Mount() {
				fmt.Println("Signed in. Run 'dms dashboard' to see your documents.")
				return nil
			}
			fmt.Println("Not signed in. Run 'dms login' or 'dms register'.")
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a username or email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		return withApp(cmd, username, func(ctx context.Context, a *app.DMSApp) error {
			creds, err := promptCredentials(username)
			if err != nil {
				return err
			}
			login := a.Login()
			if err := login.Submit(ctx, creds); err != nil {
				return authError(err, login.View())
			}
			fmt.Printf("Signed in as %s\n", creds.Username)
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		return withApp(cmd, username, func(ctx context.Context, a *app.DMSApp) error {
			reg, confirm, err := promptRegistration(username, email)
			if err != nil {
				return err
			}
			c := a.Register()
			if err := c.Submit(ctx, reg, confirm); err != nil {
				return authError(err, c.View())
			}
			fmt.Printf("Account created. Signed in as %s\n", reg.Username)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "", func(ctx context.Context, a *app.DMSApp) error {
			if err := a.Logout(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "", func(ctx context.Context, a *app.DMSApp) error {
			user, err := a.Whoami(ctx)
			if err != nil {
				return explain(a, err, dms.StatusMessage{})
			}
			return renderUser(os.Stdout, *user)
		})
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show statistics and recent documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "", func(ctx context.Context, a *app.DMSApp) error {
			c := a.Dashboard()
			if err := c.Mount(ctx); err != nil {
				return explain(a, err, dms.StatusMessage{})
			}
			defer c.Unmount()
			return renderDashboard(os.Stdout, c.View())
		})
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().String("api-url", "", "Server origin (default from DMS_API_URL or http://localhost:5000)")
	configInitCmd.Flags().String("storage", "", "Session storage: file, sqlite or memory")
	configInitCmd.Flags().Bool("encrypt", false, "Encrypt the session file with a generated age identity")

	loginCmd.Flags().StringP("username", "u", "", "Username or email address")
	registerCmd.Flags().StringP("username", "u", "", "Username")
	registerCmd.Flags().StringP("email", "e", "", "Email address")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(categoriesCmd)
}
