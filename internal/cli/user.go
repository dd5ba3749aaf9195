package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	userCmd.AddCommand(newUserRegisterCmd())
	userCmd.AddCommand(newUserLoginCmd())
	userCmd.AddCommand(newUserListCmd())
	userCmd.AddCommand(newUserGetCmd())
	userCmd.AddCommand(newUserUpdateCmd())
	userCmd.AddCommand(newUserDeleteCmd())

	return userCmd
}

func newUserRegisterCmd() *cobra.Command {
	var (
		name     string
		email    string
		password string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"name":     name,
				"email":    email,
				"password": password,
			}
			if len(roles) > 0 {
				body["roles"] = roles
			}

			var user User
			if err := client.Post("/api/users", body, &user); err != nil {
				return err
			}

			out.Print(user)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "Roles (default: user)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserLoginCmd() *cobra.Command {
	var (
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"name":     name,
				"password": password,
			}

			var result AuthResult
			if err := client.Post("/api/users/login", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var users []User
			if err := client.Get("/api/users", &users); err != nil {
				return err
			}

			out.Print(users)
			return nil
		},
	}
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Get a user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var user User
			if err := client.Get("/api/users/"+args[0], &user); err != nil {
				return err
			}

			out.Print(user)
			return nil
		},
	}
}

func newUserUpdateCmd() *cobra.Command {
	var (
		email    string
		password string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{}
			if cmd.Flags().Changed("email") {
				body["email"] = email
			}
			if cmd.Flags().Changed("password") {
				body["password"] = password
			}
			if cmd.Flags().Changed("roles") {
				body["roles"] = roles
			}

			var user User
			if err := client.Put("/api/users/"+args[0], body, &user); err != nil {
				return err
			}

			out.Print(user)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "New roles (admin only)")

	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var user User
			if err := client.Delete("/api/users/"+args[0], &user); err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("Deleted user %s (%s)", user.Name, user.ID))
			return nil
		},
	}
}
