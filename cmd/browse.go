package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/pkg/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the library interactively",
	Long: `Browse the library in a scrollable list with a live filter.

Vim Navigation:
- k / ↑ : Move Up
- j / ↓ : Move Down
- /     : Filter by name
- f     : Toggle favorite
- o     : Open the asset's file
- q     : Quit`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	assets := catalogService.GetAll(ctx)
	if len(assets) == 0 {
		fmt.Println(ui.FormatWarning("Library is empty."))
		return nil
	}

	p := tea.NewProgram(newBrowseModel(assets))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// --- TUI Model ---

type browseModel struct {
	assets    []domain.Asset
	filtered  []domain.Asset
	cursor    int
	filter    string
	filtering bool
	status    string
}

func newBrowseModel(assets []domain.Asset) browseModel {
	m := browseModel{assets: assets}
	m.applyFilter()
	return m
}

func (m *browseModel) applyFilter() {
	if m.filter == "" {
		m.filtered = m.assets
	} else {
		query := strings.ToLower(m.filter)
		m.filtered = nil
		for _, a := range m.assets {
			if strings.Contains(strings.ToLower(a.Metadata.Name), query) {
				m.filtered = append(m.filtered, a)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m browseModel) selected() (domain.Asset, bool) {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return domain.Asset{}, false
	}
	return m.filtered[m.cursor], true
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Keystrokes feed the filter while it is active.
	if m.filtering {
		switch keyMsg.String() {
		case "enter", "esc":
			m.filtering = false
		case "backspace":
			if len(m.filter) > 0 {
				m.filter = m.filter[:len(m.filter)-1]
				m.applyFilter()
			}
		default:
			if len(keyMsg.Runes) > 0 {
				m.filter += string(keyMsg.Runes)
				m.applyFilter()
			}
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case "/":
		m.filtering = true
		m.filter = ""
		m.applyFilter()

	case "f":
		if asset, ok := m.selected(); ok {
			ctx := getContext()
			next := !asset.State.IsFavorite
			if err := catalogService.SetFavorite(ctx, asset.ID, next); err != nil {
				m.status = "favorite failed: " + err.Error()
				break
			}
			m.refresh(asset.ID)
			if next {
				m.status = "favorited " + asset.Metadata.Name
			} else {
				m.status = "unfavorited " + asset.Metadata.Name
			}
		}

	case "o":
		if asset, ok := m.selected(); ok {
			if asset.FileInfo.FilePath == "" {
				m.status = "no file for " + asset.Metadata.Name
				break
			}
			if err := openWithPlatformHandler(asset.FileInfo.FilePath); err != nil {
				m.status = "open failed: " + err.Error()
				break
			}
			catalogService.Touch(getContext(), asset.ID)
			m.status = "opened " + asset.Metadata.Name
		}
	}

	return m, nil
}

// refresh re-reads one asset from the catalog so the list reflects the
// result of a mutation.
func (m *browseModel) refresh(id domain.AssetID) {
	updated, err := catalogService.Get(getContext(), id)
	if err != nil {
		return
	}
	for i := range m.assets {
		if m.assets[i].ID == id {
			m.assets[i] = updated
		}
	}
	m.applyFilter()
}

func (m browseModel) View() string {
	var s strings.Builder

	s.WriteString("\n")
	s.WriteString(ui.StyleTitle.Render(" " + ui.IconAsset + " Library"))
	s.WriteString(ui.StyleMuted.Render(fmt.Sprintf(" (%d)", len(m.filtered))))
	s.WriteString("\n\n")

	if m.filtering || m.filter != "" {
		s.WriteString(ui.StyleAccent.Render(" / " + m.filter))
		if m.filtering {
			s.WriteString(ui.StyleAccent.Render("▌"))
		}
		s.WriteString("\n\n")
	}

	if len(m.filtered) == 0 {
		s.WriteString(ui.StyleMuted.Render("  (no matches)"))
		s.WriteString("\n")
	}

	for i, asset := range m.filtered {
		cursor := "  "
		style := ui.StyleMuted
		if m.cursor == i {
			cursor = ui.StyleAccent.Render("→ ")
			style = ui.StyleBold
		}

		label := asset.Metadata.Name
		if asset.State.IsGroup {
			label = ui.IconGroup + " " + label
		}
		if asset.State.IsFavorite {
			label += " " + ui.IconFavorite
		}
		if asset.Metadata.AssetType != "" {
			label += ui.StyleMuted.Render("  [" + asset.Metadata.AssetType + "]")
		}

		s.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(label)))
	}

	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(ui.StyleInfo.Render(" " + m.status))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render(" [k/j] Navigate  [/] Filter  [f] Favorite  [o] Open  [q] Quit"))
	s.WriteString("\n")

	return s.String()
}
