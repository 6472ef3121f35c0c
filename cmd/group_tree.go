package cmd

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
)

// TreeExplorer is a terminal explorer for the group hierarchy. It shows
// one level at a time: the current group's members, with Enter descending
// into a selected group and Backspace climbing back out.
type TreeExplorer struct {
	library       *domain.Library
	current       domain.AssetID // zero id means the top level
	history       []domain.AssetID
	screen        tcell.Screen
	width         int
	height        int
	scrollOffset  int
	selectedIndex int
}

// NewTreeExplorer creates an explorer rooted at the library's top level.
func NewTreeExplorer(lib *domain.Library) (*TreeExplorer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	width, height := screen.Size()
	return &TreeExplorer{
		library: lib,
		screen:  screen,
		width:   width,
		height:  height,
	}, nil
}

// Run owns the screen until the user quits.
func (v *TreeExplorer) Run() error {
	defer v.screen.Fini()

	v.screen.Clear()
	v.render()

	for {
		ev := v.screen.PollEvent()

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.width, v.height = ev.Size()
			v.screen.Sync()
			v.render()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
			v.handleKeyPress(ev)
			v.render()
		}
	}
}

func (v *TreeExplorer) handleKeyPress(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyCtrlP:
		v.moveCursor(-1)
	case tcell.KeyDown, tcell.KeyCtrlN:
		v.moveCursor(1)
	case tcell.KeyEnter:
		v.descend()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.ascend()
	case tcell.KeyHome:
		v.selectedIndex = 0
		v.scrollOffset = 0
	case tcell.KeyEnd:
		v.selectedIndex = len(v.visibleItems()) - 1
		v.adjustScroll()
	}

	// Vim-style navigation
	switch ev.Rune() {
	case 'j':
		v.moveCursor(1)
	case 'k':
		v.moveCursor(-1)
	case 'h':
		v.ascend()
	case 'l':
		v.descend()
	case 'g':
		v.selectedIndex = 0
		v.scrollOffset = 0
	case 'G':
		v.selectedIndex = len(v.visibleItems()) - 1
		v.adjustScroll()
	}
}

func (v *TreeExplorer) moveCursor(delta int) {
	items := v.visibleItems()
	if len(items) == 0 {
		return
	}

	v.selectedIndex += delta
	if v.selectedIndex < 0 {
		v.selectedIndex = 0
	}
	if v.selectedIndex >= len(items) {
		v.selectedIndex = len(items) - 1
	}
	v.adjustScroll()
}

func (v *TreeExplorer) adjustScroll() {
	visibleLines := v.height - 7

	if v.selectedIndex < v.scrollOffset {
		v.scrollOffset = v.selectedIndex
	}
	if v.selectedIndex >= v.scrollOffset+visibleLines {
		v.scrollOffset = v.selectedIndex - visibleLines + 1
	}
}

// visibleItems lists the assets at the current level, name-sorted.
func (v *TreeExplorer) visibleItems() []domain.Asset {
	var ids []domain.AssetID
	if v.current.IsZero() {
		for _, asset := range v.library.All() {
			if asset.IsVisibleInList() {
				ids = append(ids, asset.ID)
			}
		}
	} else {
		ids = v.library.ChildrenOf(v.current)
	}

	items := make([]domain.Asset, 0, len(ids))
	for _, id := range ids {
		if asset, ok := v.library.Get(id); ok {
			items = append(items, asset)
		}
	}
	return items
}

// descend enters the selected group. Non-group selections are ignored.
func (v *TreeExplorer) descend() {
	items := v.visibleItems()
	if len(items) == 0 || v.selectedIndex >= len(items) {
		return
	}

	target := items[v.selectedIndex]
	if !target.State.IsGroup {
		return
	}

	v.history = append(v.history, v.current)
	v.current = target.ID
	v.selectedIndex = 0
	v.scrollOffset = 0
}

// ascend climbs back to the level the user came from.
func (v *TreeExplorer) ascend() {
	if len(v.history) == 0 {
		return
	}

	v.current = v.history[len(v.history)-1]
	v.history = v.history[:len(v.history)-1]
	v.selectedIndex = 0
	v.scrollOffset = 0
}

// breadcrumb renders the path from the top level to the current group.
func (v *TreeExplorer) breadcrumb() string {
	if v.current.IsZero() {
		return "Library"
	}

	parts := []string{}
	id := v.current
	for !id.IsZero() {
		asset, ok := v.library.Get(id)
		if !ok {
			break
		}
		parts = append([]string{asset.Metadata.Name}, parts...)
		id = asset.ParentGroupID
	}
	return "Library / " + strings.Join(parts, " / ")
}

func (v *TreeExplorer) render() {
	v.screen.Clear()

	y := 0
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorPurple)
	v.drawText(0, y, "┌─ "+v.breadcrumb(), titleStyle)
	y++

	items := v.visibleItems()
	groups := 0
	for _, item := range items {
		if item.State.IsGroup {
			groups++
		}
	}
	statsText := fmt.Sprintf("│  %d item(s), %d group(s)", len(items), groups)
	v.drawText(0, y, statsText, tcell.StyleDefault.Foreground(tcell.ColorGray))
	y++
	v.drawText(0, y, "└─────────────────────────────────────────────────────────────", tcell.StyleDefault.Foreground(tcell.ColorGray))
	y += 2

	if len(items) == 0 {
		v.drawText(2, y, "(empty)", tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	visibleLines := v.height - 7
	for i, asset := range items {
		if i < v.scrollOffset {
			continue
		}
		if i >= v.scrollOffset+visibleLines {
			break
		}

		style := tcell.StyleDefault
		prefix := "  "
		if i == v.selectedIndex {
			style = style.Reverse(true)
			prefix = "▶ "
		}

		label := asset.Metadata.Name
		if asset.State.IsGroup {
			style = style.Foreground(tcell.ColorGreen)
			label += "/"
			if n := len(v.library.ChildrenOf(asset.ID)); n > 0 {
				label += fmt.Sprintf(" (%d)", n)
			}
		} else if asset.Metadata.AssetType != "" {
			label += "  [" + asset.Metadata.AssetType + "]"
		}
		if asset.State.IsFavorite {
			label += " ★"
		}

		v.drawText(0, y, prefix+label, style)
		y++
	}

	footerY := v.height - 2
	v.drawText(0, footerY, strings.Repeat("─", v.width), tcell.StyleDefault.Foreground(tcell.ColorGray))
	footerY++

	helpText := "↑↓/jk: Navigate │ Enter/l: Open group │ Backspace/h: Up │ q/Esc: Quit"
	v.drawText(0, footerY, helpText, tcell.StyleDefault.Foreground(tcell.ColorGray))

	v.screen.Show()
}

func (v *TreeExplorer) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		if x+i >= v.width {
			break
		}
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
