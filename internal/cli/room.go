package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	roomCmd := &cobra.Command{
		Use:   "room",
		Short: "Manage game rooms",
	}

	roomCmd.AddCommand(newRoomCreateCmd())
	roomCmd.AddCommand(newRoomJoinCmd())
	roomCmd.AddCommand(newRoomListCmd())
	roomCmd.AddCommand(newRoomGetCmd())
	roomCmd.AddCommand(newRoomUpdateCmd())
	roomCmd.AddCommand(newRoomDeleteCmd())

	return roomCmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a room and take the first seat",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"name":     name,
				"password": password,
			}

			var room Room
			if err := client.Post("/api/rooms", body, &room); err != nil {
				return err
			}

			out.Print(room)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Room name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Room password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var (
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a room by name and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"name":     name,
				"password": password,
			}

			var result JoinResult
			if err := client.Post("/api/rooms/join", body, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Room name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Room password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var rooms []Room
			if err := client.Get("/api/rooms", &rooms); err != nil {
				return err
			}

			out.Print(rooms)
			return nil
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "get <room-id-or-name>",
		Short: "Get a room by ID, or by name with --by-name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			path := "/api/rooms/" + args[0]
			if byName {
				path = "/api/rooms/name/" + args[0]
			}

			var room Room
			if err := client.Get(path, &room); err != nil {
				return err
			}

			out.Print(room)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byName, "by-name", false, "Look up by room name instead of ID")

	return cmd
}

func newRoomUpdateCmd() *cobra.Command {
	var (
		name     string
		password string
		status   string
	)

	cmd := &cobra.Command{
		Use:   "update <room-id>",
		Short: "Update a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{}
			if cmd.Flags().Changed("name") {
				body["name"] = name
			}
			if cmd.Flags().Changed("password") {
				body["password"] = password
			}
			if cmd.Flags().Changed("status") {
				body["status"] = status
			}

			var room Room
			if err := client.Put("/api/rooms/"+args[0], body, &room); err != nil {
				return err
			}

			out.Print(room)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New room name")
	cmd.Flags().StringVar(&password, "password", "", "New room password")
	cmd.Flags().StringVar(&status, "status", "", "New status: waiting, playing, finished")

	return cmd
}

func newRoomDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <room-id>",
		Short: "Delete a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var room Room
			if err := client.Delete("/api/rooms/"+args[0], &room); err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("Deleted room %s (%s)", room.Name, room.ID))
			return nil
		},
	}
}
