package ui

import (
	"github.com/five82/globe/internal/countries"
	"github.com/five82/globe/internal/state"
)

// command is one of the sort buttons in the command bar.
type command int

const (
	cmdSortNameAsc command = iota
	cmdSortNameDesc
	cmdSortAreaAsc
	cmdSortAreaDesc
)

var commands = []command{cmdSortNameAsc, cmdSortNameDesc, cmdSortAreaAsc, cmdSortAreaDesc}

// order maps a command to the sort it performs.
func (c command) order() countries.SortOrder {
	switch c {
	case cmdSortNameDesc:
		return countries.NameDesc
	case cmdSortAreaAsc:
		return countries.AreaAsc
	case cmdSortAreaDesc:
		return countries.AreaDesc
	default:
		return countries.NameAsc
	}
}

// key is the digit that triggers the command.
func (c command) key() string {
	return string(rune('1' + int(c)))
}

// commandForKey resolves a key press to a sort command.
func commandForKey(s string) (command, bool) {
	for _, c := range commands {
		if c.key() == s {
			return c, true
		}
	}
	return 0, false
}

// dispatch runs cmd against the store.
func dispatch(store *state.Store, cmd command) {
	if store == nil {
		return
	}
	store.Sort(cmd.order())
}
