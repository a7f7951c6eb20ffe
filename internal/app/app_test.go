package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qz "github.com/abhisek/mathdrill/internal/quiz"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

type plainScreen struct{}

func (plainScreen) Init() tea.Cmd                              { return nil }
func (p plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (plainScreen) View(int, int) string                       { return "plain" }
func (plainScreen) Title() string                              { return "Plain" }

func newTestModel() AppModel {
	src := qz.NewMockSource(qz.Mode{ID: "quick_fire", Name: "Quick Fire"})
	return newAppModel(context.Background(), Options{Source: src})
}

func TestApp_StatusFromRootOverPushedScreen(t *testing.T) {
	m := newTestModel()
	m.router.Push(plainScreen{})

	st := m.status()
	assert.Equal(t, layout.Status{Score: 0, Streak: 0, Timer: -1}, st)
	assert.Equal(t, "Plain", m.router.Active().Title())
}

func TestApp_EscPopsPushedScreen(t *testing.T) {
	m := newTestModel()
	m.router.Push(plainScreen{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ViewFramesContent(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := updated.(AppModel).frame()
	assert.Contains(t, out, "mathdrill")
	assert.Contains(t, out, "Choose a mode")
}

func TestApp_TooSmall(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})

	assert.Contains(t, updated.(AppModel).frame(), "Terminal too small")
}

func TestRun_RequiresSource(t *testing.T) {
	assert.Error(t, Run(context.Background(), Options{}))
}
