package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/agbru/puzzlebook/internal/puzzle"
)

// puzzleItem adapts a catalog entry to list.DefaultItem.
type puzzleItem struct {
	number int
	puzzle puzzle.Puzzle
}

var _ list.DefaultItem = puzzleItem{}

func (i puzzleItem) Title() string {
	return fmt.Sprintf("%d. %s", i.number, i.puzzle.Title(i.puzzle.Defaults()))
}

func (i puzzleItem) Description() string { return i.puzzle.Key() }

func (i puzzleItem) FilterValue() string { return i.puzzle.Key() }

// newPuzzleList builds the puzzle picker for a catalog.
func newPuzzleList(catalog *puzzle.Catalog) list.Model {
	puzzles := catalog.List()
	items := make([]list.Item, len(puzzles))
	for i, p := range puzzles {
		items[i] = puzzleItem{number: i + 1, puzzle: p}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Puzzles"
	l.Styles.Title = paneTitleStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}
