// Package tui implements the interactive terminal UI behind the gui
// command: a PDF picker for the current directory that runs conversions
// and shows their outcome without leaving the terminal.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmr-tortoise/pagedeck/internal/convert"
	"github.com/mmr-tortoise/pagedeck/internal/model"
	"github.com/mmr-tortoise/pagedeck/internal/pdfmeta"
)

type screen int

const (
	screenPicker screen = iota
	screenConverting
	screenDone
)

type pdfItem struct {
	path string
	desc string
}

func (i pdfItem) Title() string       { return filepath.Base(i.path) }
func (i pdfItem) Description() string { return i.desc }
func (i pdfItem) FilterValue() string { return filepath.Base(i.path) }

// convertDoneMsg carries the outcome of a background conversion.
type convertDoneMsg struct {
	result *model.ConvertResult
	err    error
}

type appModel struct {
	theme     Theme
	opts      model.ConvertOptions
	outputDir string

	scr    screen
	picker list.Model

	converting string
	result     *model.ConvertResult
	convertErr error
}

// Run starts the interactive picker for the current directory. The
// options are shared by every conversion started from the UI. A
// non-empty outputDir redirects the generated decks there.
func Run(opts model.ConvertOptions, outputDir string) error {
	m, err := newAppModel(opts, outputDir)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newAppModel(opts model.ConvertOptions, outputDir string) (appModel, error) {
	wd, err := os.Getwd()
	if err != nil {
		return appModel{}, fmt.Errorf("getwd: %w", err)
	}

	entries, err := pdfmeta.ListPDFs(wd)
	if err != nil {
		return appModel{}, err
	}

	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		desc := fmt.Sprintf("%d bytes", e.Size)
		if info, infoErr := pdfmeta.ReadInfo(e.Path); infoErr == nil {
			desc = fmt.Sprintf("%d page(s), %s", info.PageCount, info.Ratio)
		}
		items = append(items, pdfItem{path: e.Path, desc: desc})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "pagedeck"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return appModel{
		theme:     DefaultTheme(),
		opts:      opts,
		outputDir: outputDir,
		scr:       screenPicker,
		picker:    l,
	}, nil
}

// cmdConvert runs one conversion in the background and reports back.
func cmdConvert(input, outputDir string, opts model.ConvertOptions) tea.Cmd {
	return func() tea.Msg {
		output := ""
		if outputDir != "" {
			output = model.OutputPathIn(outputDir, input)
		}
		result, err := convert.Run(context.Background(), convert.Request{
			Input:  input,
			Output: output,
			Opts:   opts,
		})
		return convertDoneMsg{result: result, err: err}
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.picker.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case convertDoneMsg:
		m.scr = screenDone
		m.result = msg.result
		m.convertErr = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenConverting {
				// The pipeline is not cancelable from here yet; let it
				// finish rather than orphan a half-written deck.
				return m, nil
			}
			if m.scr == screenPicker {
				return m, tea.Quit
			}
			m.scr = screenPicker
			return m, nil

		case "enter":
			if m.scr == screenPicker {
				it, ok := m.picker.SelectedItem().(pdfItem)
				if !ok {
					return m, nil
				}
				m.scr = screenConverting
				m.converting = it.path
				return m, cmdConvert(it.path, m.outputDir, m.opts)
			}
			if m.scr == screenDone {
				m.scr = screenPicker
				return m, nil
			}

		case "esc", "b":
			if m.scr == screenDone {
				m.scr = screenPicker
				return m, nil
			}
		}
	}

	if m.scr == screenPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("pagedeck") + "\n" +
		m.theme.Subtitle.Render("PDF to PowerPoint converter") + "\n"

	switch m.scr {
	case screenPicker:
		help := m.theme.Help.Render("↑/↓ navigate • enter convert • / search • q quit")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.picker.View()) + "\n" + help)

	case screenConverting:
		card := m.theme.Card.Render(fmt.Sprintf("Converting %s ...", filepath.Base(m.converting)))
		return wrap.Render(header + "\n" + card)

	case screenDone:
		var body string
		if m.convertErr != nil {
			body = m.theme.Fail.Render("Conversion failed") + "\n\n" + m.convertErr.Error()
		} else {
			body = m.theme.Ok.Render("Done") + "\n\n" +
				fmt.Sprintf("%s\n%d slide(s), %s geometry, rendered with %s",
					m.result.OutputPath, m.result.Slides, m.result.Ratio, m.result.Method)
		}
		card := m.theme.Card.Render(body + "\n\n" + m.theme.Help.Render("enter/esc back • q quit"))
		return wrap.Render(header + "\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
