package application

import (
	"fmt"
	"strings"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

const (
	// DefaultSummaryActions is how many clauses a one-line summary carries.
	DefaultSummaryActions = 2

	// summaryMessageBudget caps how much of a message a summary clause shows.
	summaryMessageBudget = 40

	summaryEllipsis = "…"

	// EmptySummary is returned for logs with no entries so callers never
	// special-case a blank line.
	EmptySummary = "no recorded actions"
)

// levelGlyphs maps entry levels to the icons detail views print.
var levelGlyphs = map[domain.LogLevel]string{
	domain.LevelDecision:     "◆",
	domain.LevelTool:         "⚙",
	domain.LevelCorrection:   "✎",
	domain.LevelError:        "✗",
	domain.LevelCoordination: "⇄",
}

// LogStats counts a work log's entries by level.
type LogStats struct {
	Total   int
	ByLevel map[domain.LogLevel]int
}

// Summarize derives a deterministic one-line synopsis from a work log.
// Decision, tool and coordination entries take priority; error and
// correction entries surface only when nothing else was recorded. The first
// maxActions surviving entries, in sequence order, become comma-joined
// clauses.
func Summarize(log domain.WorkLog, maxActions int) string {
	if maxActions <= 0 {
		maxActions = DefaultSummaryActions
	}

	entries := summaryEntries(log)
	if len(entries) == 0 {
		return EmptySummary
	}
	if len(entries) > maxActions {
		entries = entries[:maxActions]
	}

	clauses := make([]string, 0, len(entries))
	for _, entry := range entries {
		clauses = append(clauses, summaryClause(entry))
	}

	return strings.Join(clauses, ", ")
}

// Details renders one line per entry, numbered 1..N over the filtered set so
// a bot-scoped view renumbers cleanly. An empty botFilter keeps every entry.
func Details(log domain.WorkLog, botFilter string) []string {
	lines := make([]string, 0, len(log.Entries))
	position := 0
	for _, entry := range log.Entries {
		if botFilter != "" && entry.BotName != botFilter {
			continue
		}
		position++
		lines = append(lines, fmt.Sprintf("%d. %s %s", position, glyphFor(entry.Level), detailText(entry)))
	}

	return lines
}

// Stats tallies entries by level.
func Stats(log domain.WorkLog) LogStats {
	stats := LogStats{ByLevel: map[domain.LogLevel]int{}}
	for _, entry := range log.Entries {
		stats.Total++
		stats.ByLevel[entry.Level]++
	}

	return stats
}

func summaryEntries(log domain.WorkLog) []domain.LogEntry {
	primary := make([]domain.LogEntry, 0, len(log.Entries))
	fallback := make([]domain.LogEntry, 0)
	for _, entry := range log.Entries {
		switch entry.Level {
		case domain.LevelDecision, domain.LevelTool, domain.LevelCoordination:
			primary = append(primary, entry)
		case domain.LevelError, domain.LevelCorrection:
			fallback = append(fallback, entry)
		}
	}

	if len(primary) > 0 {
		return primary
	}
	return fallback
}

func summaryClause(entry domain.LogEntry) string {
	if entry.Level == domain.LevelTool && entry.ToolName != "" {
		return fmt.Sprintf("%q", entry.ToolName)
	}

	return truncate(entry.Message, summaryMessageBudget)
}

func detailText(entry domain.LogEntry) string {
	text := entry.Message
	if entry.Level == domain.LevelTool && entry.ToolName != "" {
		if text == "" {
			text = entry.ToolName
		} else {
			text = entry.ToolName + ": " + text
		}
		if entry.Result != "" {
			text += fmt.Sprintf(" (%s)", entry.Result)
		}
	}
	if entry.BotName != "" {
		text = "[" + entry.BotName + "] " + text
	}

	return text
}

func glyphFor(level domain.LogLevel) string {
	if glyph, ok := levelGlyphs[level]; ok {
		return glyph
	}
	return "•"
}

func truncate(message string, budget int) string {
	runes := []rune(message)
	if len(runes) <= budget {
		return message
	}

	return string(runes[:budget]) + summaryEllipsis
}
