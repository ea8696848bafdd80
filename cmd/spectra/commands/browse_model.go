// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spectra-foundation/spectra/lib/synclog"
)

// browseKeyMap defines the key bindings for the dataset browser.
type browseKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding
	Sync key.Binding
	Quit key.Binding
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Sync: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("enter", "sync"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Row sync states.
const (
	rowIdle = iota
	rowSyncing
	rowSynced
	rowFailed
)

// browseRow is one dataset line in the browser.
type browseRow struct {
	id    string
	title string
	state int
	err   error
}

// browseModel is the bubbletea model for the dataset browser.
type browseModel struct {
	ctx     context.Context
	rt      *runtime
	history *synclog.Log

	rows    []browseRow
	cursor  int
	width   int
	height  int
	spinner spinner.Model

	headerStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	syncedStyle   lipgloss.Style
	failedStyle   lipgloss.Style
	helpStyle     lipgloss.Style
}

// syncDoneMsg reports completion of a background pull.
type syncDoneMsg struct {
	id  string
	err error
}

func newBrowseModel(ctx context.Context, rt *runtime, history *synclog.Log) *browseModel {
	model := &browseModel{
		ctx:     ctx,
		rt:      rt,
		history: history,

		headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		selectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(lipgloss.Color("231")),
		syncedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		helpStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}

	model.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	for _, status := range rt.Registry.List() {
		row := browseRow{id: status.ID, title: status.Title}
		if status.Synced {
			row.state = rowSynced
		}
		model.rows = append(model.rows, row)
	}
	return model
}

func (m *browseModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case syncDoneMsg:
		for index := range m.rows {
			if m.rows[index].id != msg.id {
				continue
			}
			if msg.err != nil {
				m.rows[index].state = rowFailed
				m.rows[index].err = msg.err
			} else {
				m.rows[index].state = rowSynced
				m.rows[index].err = nil
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, browseKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, browseKeys.Home):
			m.cursor = 0
		case key.Matches(msg, browseKeys.End):
			m.cursor = len(m.rows) - 1
		case key.Matches(msg, browseKeys.Sync):
			return m, m.startSync(m.cursor)
		}
	}
	return m, nil
}

// startSync launches a background pull for the row at index. Already
// running rows are left alone; synced rows are re-validated, which is
// cheap when the local copy is still good.
func (m *browseModel) startSync(index int) tea.Cmd {
	if index < 0 || index >= len(m.rows) || m.rows[index].state == rowSyncing {
		return nil
	}
	row := &m.rows[index]
	row.state = rowSyncing
	row.err = nil

	ctx := m.ctx
	rt := m.rt
	history := m.history
	id := row.id
	title := row.title

	return func() tea.Msg {
		started := time.Now()
		_, err := rt.Puller.Ensure(ctx, id)

		event := synclog.Event{
			DatasetID: id,
			Title:     title,
			StartedAt: started,
			Duration:  time.Since(started),
			Outcome:   synclog.OutcomeSuccess,
		}
		if err != nil {
			event.Outcome = synclog.OutcomeFailure
			event.Error = err.Error()
		}
		if recordErr := history.Record(ctx, event); recordErr != nil {
			rt.Logger.Warn("recording pull history failed", "error", recordErr)
		}

		return syncDoneMsg{id: id, err: err}
	}
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerStyle.Render("Spectra datasets"))
	b.WriteString("\n\n")

	for index, row := range m.rows {
		marker := "○"
		switch row.state {
		case rowSynced:
			marker = m.syncedStyle.Render("●")
		case rowSyncing:
			marker = m.spinner.View()
		case rowFailed:
			marker = m.failedStyle.Render("✗")
		}

		line := fmt.Sprintf("%s %s (%s)", marker, row.title, row.id)
		if row.err != nil {
			line += m.failedStyle.Render(fmt.Sprintf("  %v", row.err))
		}
		if index == m.cursor {
			line = m.selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("j/k move · enter sync · q quit"))
	return b.String()
}
