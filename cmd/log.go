package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	thinkingadapter "github.com/jhonny-cinco-ai/nanofolks-sub004/internal/adapters/render/thinking"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/application"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

func newLogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect recorded work logs",
	}

	cmd.AddCommand(
		newLogShowCmd(app),
		newLogRecordCmd(app),
	)

	return cmd
}

func newLogRecordCmd(app *app) *cobra.Command {
	var sessionKey string
	var decisions []string
	var tools []string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a work log for the session's current room",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sessionKey == "" {
				sessionKey = app.sessionKey
			}
			if len(decisions) == 0 && len(tools) == 0 {
				return errors.New("nothing to record: pass --decision or --tool")
			}

			if err := app.rooms.Initialize(cmd.Context()); err != nil {
				return err
			}

			room, err := app.rooms.CurrentRoom(cmd.Context(), sessionKey)
			if err != nil {
				return err
			}

			handle, err := app.logs.Open(cmd.Context(), sessionKey, room)
			if err != nil {
				return err
			}

			for _, message := range decisions {
				if err := app.logs.Append(cmd.Context(), handle, domain.LogEntry{
					Level:   domain.LevelDecision,
					Message: message,
				}); err != nil {
					return err
				}
			}
			for _, tool := range tools {
				name, message, _ := strings.Cut(tool, ":")
				if err := app.logs.Append(cmd.Context(), handle, domain.LogEntry{
					Level:    domain.LevelTool,
					ToolName: strings.TrimSpace(name),
					Message:  strings.TrimSpace(message),
				}); err != nil {
					return err
				}
			}

			sealed, err := app.logs.Seal(cmd.Context(), handle)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded in %q: %s\n",
				sealed.RoomContext.RoomID, application.Summarize(sealed, 0))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionKey, "session", "", "session key (defaults to $NANOFOLKS_SESSION or \"cli\")")
	cmd.Flags().StringArrayVar(&decisions, "decision", nil, "decision message (repeatable)")
	cmd.Flags().StringArrayVar(&tools, "tool", nil, "tool invocation as name[:message] (repeatable)")

	return cmd
}

func newLogShowCmd(app *app) *cobra.Command {
	var sessionKey string
	var roomID string
	var botFilter string
	var expanded bool
	var maxActions int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the most recent archived work log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sessionKey == "" {
				sessionKey = app.sessionKey
			}

			roomFilter := domain.RoomID("")
			if roomID != "" {
				if err := app.rooms.Initialize(cmd.Context()); err != nil {
					return err
				}
				roomFilter = domain.NormalizeRoomID(roomID)
				if _, err := app.rooms.GetRoom(cmd.Context(), roomID); err != nil {
					// Unknown room references fall back to the default room
					// here at the command layer; the room manager itself only
					// reports what exists.
					if !errors.Is(err, domain.ErrRoomNotFound) {
						return err
					}
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "room %q not found, showing %q\n", roomFilter, domain.DefaultRoomID)
					roomFilter = domain.DefaultRoomID
				}
			}

			logs, err := app.archive.Replay(cmd.Context(), sessionKey, roomFilter)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no work logs recorded")
				return nil
			}

			rendered, err := app.logRenderer(logs[len(logs)-1], thinkingadapter.RenderOptions{
				Expanded:   expanded,
				BotFilter:  botFilter,
				MaxActions: maxActions,
			})
			if err != nil {
				return fmt.Errorf("render work log: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionKey, "session", "", "session key (defaults to $NANOFOLKS_SESSION or \"cli\")")
	cmd.Flags().StringVar(&roomID, "room", "", "only logs recorded in this room")
	cmd.Flags().StringVar(&botFilter, "bot", "", "only entries attributed to this bot")
	cmd.Flags().BoolVar(&expanded, "expanded", false, "show the step-by-step listing")
	cmd.Flags().IntVar(&maxActions, "max-actions", 0, "summary clause budget (0 = default)")

	return cmd
}
