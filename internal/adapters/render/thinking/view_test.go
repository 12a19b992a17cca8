package thinking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

func sampleLog(sealed bool) domain.WorkLog {
	log := domain.WorkLog{
		SessionKey: "session-1",
		RoomContext: domain.RoomContext{
			RoomID:       "launch",
			RoomType:     domain.RoomTypeProject,
			Participants: []string{"alice", "bob"},
		},
		Entries: []domain.LogEntry{
			{Sequence: 1, Level: domain.LevelDecision, Message: "route to the research bot"},
			{Sequence: 2, Level: domain.LevelTool, Message: "query the index", ToolName: "search"},
			{Sequence: 3, Level: domain.LevelTool, Message: "fetch the page", ToolName: "fetch"},
		},
		StartedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	if sealed {
		log.SealedAt = log.StartedAt.Add(2 * time.Second)
	}
	return log
}

func TestRenderCollapsedShowsSummaryLine(t *testing.T) {
	rendered, err := Render(sampleLog(true), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, rendered, "Thinking")
	assert.Contains(t, rendered, "room: launch (project)")
	assert.Contains(t, rendered, "route to the research bot")
	assert.Contains(t, rendered, `"search"`)
	assert.NotContains(t, rendered, "steps •")
}

func TestRenderExpandedShowsDetailsAndFooter(t *testing.T) {
	rendered, err := Render(sampleLog(true), RenderOptions{Expanded: true})
	require.NoError(t, err)

	assert.Contains(t, rendered, "1. ◆ route to the research bot")
	assert.Contains(t, rendered, "2. ⚙ search: query the index")
	assert.Contains(t, rendered, "[3 steps • 1 decisions • 2 tools]")
}

func TestRenderEmptyLogUsesPlaceholder(t *testing.T) {
	log := sampleLog(true)
	log.Entries = nil

	rendered, err := Render(log, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, rendered, "no recorded actions")
}

func TestRenderMarksUnsealedLogs(t *testing.T) {
	rendered, err := Render(sampleLog(false), RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, rendered, "[in progress]")
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render(sampleLog(true), RenderOptions{Expanded: true})
	require.NoError(t, err)
	second, err := Render(sampleLog(true), RenderOptions{Expanded: true})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
