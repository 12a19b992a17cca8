package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

func newRoomCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage collaboration rooms",
	}

	cmd.AddCommand(
		newRoomListCmd(app),
		newRoomCreateCmd(app),
		newRoomInviteCmd(app),
		newRoomSwitchCmd(app),
	)

	return cmd
}

func newRoomListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms in creation order, default room first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.rooms.Initialize(cmd.Context()); err != nil {
				return err
			}

			summaries, err := app.rooms.ListRooms(cmd.Context())
			if err != nil {
				return err
			}

			for _, summary := range summaries {
				marker := " "
				if summary.IsDefault {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%d participant(s)\n",
					marker, summary.ID, summary.Type, summary.ParticipantCount)
			}

			return nil
		},
	}
}

func newRoomCreateCmd(app *app) *cobra.Command {
	var roomType string
	var participants []string

	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.rooms.Initialize(cmd.Context()); err != nil {
				return err
			}

			room, err := app.rooms.CreateRoom(cmd.Context(), args[0], domain.RoomType(roomType), participants)
			if err != nil {
				return roomErrorMessage(err, args[0])
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s room %q with %s\n",
				room.Type, room.ID, strings.Join(room.Participants, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&roomType, "type", string(domain.RoomTypeProject), "room type: open, project, direct or coordination")
	cmd.Flags().StringSliceVar(&participants, "participant", nil, "initial participant (repeatable)")

	return cmd
}

func newRoomInviteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "invite <room> <participant>",
		Short: "Invite a participant into a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.rooms.Initialize(cmd.Context()); err != nil {
				return err
			}

			room, err := app.rooms.InviteParticipant(cmd.Context(), args[0], args[1])
			if err != nil {
				return roomErrorMessage(err, args[0])
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "room %q now has %s\n",
				room.ID, strings.Join(room.Participants, ", "))
			return nil
		},
	}
}

func newRoomSwitchCmd(app *app) *cobra.Command {
	var sessionKey string

	cmd := &cobra.Command{
		Use:   "switch <room>",
		Short: "Make a room current for this session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.rooms.Initialize(cmd.Context()); err != nil {
				return err
			}

			if sessionKey == "" {
				sessionKey = app.sessionKey
			}

			if err := app.rooms.SwitchFocus(cmd.Context(), sessionKey, args[0]); err != nil {
				return roomErrorMessage(err, args[0])
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %q is now in room %q\n",
				sessionKey, domain.NormalizeRoomID(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionKey, "session", "", "session key (defaults to $NANOFOLKS_SESSION or \"cli\")")

	return cmd
}

// roomErrorMessage turns the typed room errors into the user-facing phrasing
// the terminal shows; anything unrecognized passes through unchanged.
func roomErrorMessage(err error, rawID string) error {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return fmt.Errorf("room %q not found", domain.NormalizeRoomID(rawID))
	case errors.Is(err, domain.ErrDuplicateRoom):
		return fmt.Errorf("room %q already exists", domain.NormalizeRoomID(rawID))
	case errors.Is(err, domain.ErrRoomCapacity):
		return fmt.Errorf("direct room %q is full", domain.NormalizeRoomID(rawID))
	case errors.Is(err, domain.ErrInvalidRoomType):
		return fmt.Errorf("unknown room type; pick open, project, direct or coordination")
	default:
		return err
	}
}
