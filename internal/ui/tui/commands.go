package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kodkafa/nataly/internal/ports"
)

func loadInvocationsCmd(store ports.ArtifactStore) tea.Cmd {
	return func() tea.Msg {
		refs, err := store.ListInvocations()
		return invocationsLoadedMsg{refs: refs, err: err}
	}
}

func loadDetailCmd(store ports.ArtifactStore, id string) tea.Cmd {
	return func() tea.Msg {
		art, err := store.LoadInvocation(id)
		return invocationDetailMsg{id: id, art: art, err: err}
	}
}
