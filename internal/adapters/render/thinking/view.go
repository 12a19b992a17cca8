package thinking

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/application"
	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

// RenderOptions controls how much of a work log the view discloses.
type RenderOptions struct {
	// Expanded shows the step-by-step listing instead of the one-line
	// summary.
	Expanded bool
	// BotFilter restricts the detail listing to one bot's entries.
	BotFilter string
	// MaxActions caps the summary clauses; zero means the default.
	MaxActions int
}

func renderView(log domain.WorkLog, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Thinking"),
		s.header.Render(roomLine(log.RoomContext)),
	}

	if opts.Expanded {
		details := application.Details(log, opts.BotFilter)
		if len(details) == 0 {
			lines = append(lines, s.empty.Render(application.EmptySummary))
		} else {
			for _, detail := range details {
				lines = append(lines, s.detail.Render(detail))
			}
		}
		lines = append(lines, s.footer.Render(footerLine(application.Stats(log))))
	} else {
		lines = append(lines, s.summary.Render(application.Summarize(log, opts.MaxActions)))
	}

	if !log.Sealed() {
		lines = append(lines, s.sealed.Render("[in progress]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func roomLine(ctx domain.RoomContext) string {
	return fmt.Sprintf("room: %s (%s) · %s", ctx.RoomID, ctx.RoomType, strings.Join(ctx.Participants, ", "))
}

func footerLine(stats application.LogStats) string {
	return fmt.Sprintf("[%d steps • %d decisions • %d tools]",
		stats.Total,
		stats.ByLevel[domain.LevelDecision],
		stats.ByLevel[domain.LevelTool],
	)
}
