package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/smallprintlabs/clausecheck/internal/cli"
	"github.com/smallprintlabs/clausecheck/internal/engine"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

func candidatesReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Interactively review pending candidates",
		Long:  `Step through pending candidate patterns, scoring them into the catalog or rejecting them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			pending, err := eng.ListCandidates(ctx, model.CandidateStatePending)
			if err != nil {
				return fmt.Errorf("failed to list pending candidates: %w", err)
			}
			if len(pending) == 0 {
				fmt.Println(cli.InfoStyle.Render("Review queue is empty."))
				return nil
			}

			m := newReviewModel(ctx, eng, pending)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("review session failed: %w", err)
			}
			return nil
		},
	}
}

type reviewPhase int

const (
	phaseBrowse reviewPhase = iota
	phaseCategory
	phaseWeight
)

type reviewModel struct {
	ctx        context.Context
	engine     *engine.Engine
	candidates []model.CandidatePattern
	input      textinput.Model
	status     string
	phase      reviewPhase
	index      int
	scored     int
	rejected   int
}

func newReviewModel(ctx context.Context, eng *engine.Engine, candidates []model.CandidatePattern) reviewModel {
	input := textinput.New()
	input.Placeholder = "category_key"
	input.CharLimit = 64

	return reviewModel{
		ctx:        ctx,
		engine:     eng,
		candidates: candidates,
		input:      input,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.phase {
	case phaseCategory:
		return m.updateCategory(keyMsg)
	case phaseWeight:
		return m.updateWeight(keyMsg)
	default:
		return m.updateBrowse(keyMsg)
	}
}

func (m reviewModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.index < len(m.candidates)-1 {
			m.index++
		}
	case "k", "up":
		if m.index > 0 {
			m.index--
		}
	case "r":
		candidate := m.current()
		if candidate == nil {
			return m, nil
		}
		if err := m.engine.Reject(m.ctx, candidate.ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.rejected++
		m.removeCurrent()
		m.status = "rejected"
		if len(m.candidates) == 0 {
			return m, tea.Quit
		}
	case "s":
		candidate := m.current()
		if candidate == nil {
			return m, nil
		}
		m.input.SetValue(candidate.Label)
		m.input.Focus()
		m.phase = phaseCategory
		m.status = ""
	case "t":
		if candidate := m.current(); candidate != nil {
			if candidate.Type == model.CategoryTypeRisk {
				candidate.Type = model.CategoryTypeBenefit
			} else {
				candidate.Type = model.CategoryTypeRisk
			}
		}
	}
	return m, nil
}

func (m reviewModel) updateCategory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.phase = phaseBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		if strings.TrimSpace(m.input.Value()) == "" {
			m.status = "category key cannot be empty"
			return m, nil
		}
		m.phase = phaseWeight
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m reviewModel) updateWeight(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.phase = phaseBrowse
		return m, nil
	}
	if len(key) != 1 || key[0] < '1' || key[0] > '5' {
		m.status = "press 1-5 to choose a weight, esc to cancel"
		return m, nil
	}

	candidate := m.current()
	if candidate == nil {
		m.phase = phaseBrowse
		return m, nil
	}

	weight := int(key[0] - '0')
	categoryKey := strings.TrimSpace(m.input.Value())

	if _, err := m.engine.Score(m.ctx, candidate.ID, categoryKey, candidate.Type, weight); err != nil {
		m.status = err.Error()
		m.phase = phaseBrowse
		return m, nil
	}

	m.scored++
	m.removeCurrent()
	m.phase = phaseBrowse
	m.status = fmt.Sprintf("scored into %s (weight %d)", categoryKey, weight)
	if len(m.candidates) == 0 {
		return m, tea.Quit
	}
	return m, nil
}

func (m *reviewModel) current() *model.CandidatePattern {
	if m.index >= len(m.candidates) {
		return nil
	}
	return &m.candidates[m.index]
}

func (m *reviewModel) removeCurrent() {
	m.candidates = append(m.candidates[:m.index], m.candidates[m.index+1:]...)
	if m.index >= len(m.candidates) && m.index > 0 {
		m.index--
	}
}

func (m reviewModel) View() string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("Candidate review"))
	b.WriteString(fmt.Sprintf("\n%d pending · %d scored · %d rejected\n\n",
		len(m.candidates), m.scored, m.rejected))

	if len(m.candidates) == 0 {
		b.WriteString(cli.InfoStyle.Render("Queue empty."))
		return b.String()
	}

	for i, c := range m.candidates {
		cursor := "  "
		if i == m.index {
			cursor = "> "
		}
		line := fmt.Sprintf("%s[%s] p%d %.2f  %s", cursor,
			cli.TypeStyle(c.Type).Render(string(c.Type)), c.Page, c.Confidence, c.Phrase)
		if i == m.index {
			b.WriteString(line)
		} else {
			b.WriteString(cli.SubtleStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.phase {
	case phaseCategory:
		b.WriteString("Category key: " + m.input.View() + "\n")
		b.WriteString(cli.SubtleStyle.Render("enter to continue · esc to cancel"))
	case phaseWeight:
		b.WriteString(fmt.Sprintf("Weight for %q (1-5): ", strings.TrimSpace(m.input.Value())))
		b.WriteString("\n")
		b.WriteString(cli.SubtleStyle.Render("press 1-5 · esc to cancel"))
	default:
		b.WriteString(cli.SubtleStyle.Render("s score · r reject · t toggle type · j/k move · q quit"))
	}

	if m.status != "" {
		b.WriteString("\n" + cli.WarningStyle.Render(m.status))
	}

	return b.String()
}
