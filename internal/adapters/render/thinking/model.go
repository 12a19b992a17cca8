package thinking

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhonny-cinco-ai/nanofolks-sub004/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	log    domain.WorkLog
	opts   RenderOptions
	styles styles
	output string
}

func newModel(log domain.WorkLog, opts RenderOptions) model {
	return model{
		log:    log,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.log, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render paints one work log and returns the styled text. The bubbletea
// program runs headless for a single frame; any rendering loop can call
// this repeatedly without side effects.
func Render(log domain.WorkLog, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(log, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
