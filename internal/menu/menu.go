package menu

import (
	"context"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Item is one selectable menu entry.
type Item struct {
	ID    string
	Label string
}

// Signaler delivers a signal to a process running inside a container.
type Signaler interface {
	Kill(ctx context.Context, id string, pid int, signal string) error
}

// Context carries the process under the cursor plus the client used to act
// on it.
type Context struct {
	ContainerID   string
	ContainerName string
	PID           int
	Command       string
	Client        Signaler
}

// Action runs when an item is chosen. A nil command means nothing to do.
type Action func(Context, Item) tea.Cmd

// ActionResult reports what an executed action did.
type ActionResult struct {
	Info string
	Err  error
}

// SignalItems returns the signal menu entries in display order.
func SignalItems() []Item {
	return itemsForIDs(signalOrder)
}

// ActionHandlers maps menu identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	handlers := make(map[string]Action, len(signalOrder))
	for _, id := range signalOrder {
		handlers["signal:"+id] = SignalAction
	}
	return handlers
}

func itemsForIDs(ids []string) []Item {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: prettyLabel(id)}
	}
	return items
}

// prettyLabel renders a menu ID for display: separators become spaces and
// everything after the first rune of each word is lowered.
func prettyLabel(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		runes := []rune(word)
		for j, r := range runes[1:] {
			runes[j+1] = unicode.ToLower(r)
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
