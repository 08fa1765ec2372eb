package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	refresh    key.Binding
	invalidate key.Binding
	buildInfo  key.Binding
	newItem    key.Binding
	toggle     key.Binding
	filter     key.Binding
	delete     key.Binding
	copy       key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("q")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	invalidate: key.NewBinding(key.WithKeys("x")),
	buildInfo:  key.NewBinding(key.WithKeys("v")),
	newItem:    key.NewBinding(key.WithKeys("n")),
	toggle:     key.NewBinding(key.WithKeys("t")),
	filter:     key.NewBinding(key.WithKeys("a")),
	delete:     key.NewBinding(key.WithKeys("d")),
	copy:       key.NewBinding(key.WithKeys("c")),
	yes:        key.NewBinding(key.WithKeys("y", "s")),
	no:         key.NewBinding(key.WithKeys("n", "esc")),
}
