package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-menu/internal/menu"
)

const (
	openDuration   = 500 * time.Millisecond
	closeDuration  = 150 * time.Millisecond
	closeEndHeight = 0.35
	frameInterval  = 16 * time.Millisecond
)

type animTickMsg struct{}

func animTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return animTickMsg{} })
}

// animation reveals or hides a surface by scaling the number of rows drawn.
type animation struct {
	start   time.Time
	dur     time.Duration
	from    float64
	to      float64
	closing bool
	done    func()
}

func (a *animation) progress(now time.Time) float64 {
	if a.dur <= 0 {
		return 1
	}
	p := float64(now.Sub(a.start)) / float64(a.dur)
	return math.Max(0, math.Min(1, p))
}

// fraction is the share of the surface height visible at now.
func (a *animation) fraction(now time.Time) float64 {
	p := a.progress(now)
	var eased float64
	if a.closing {
		eased = p * p * p
	} else {
		eased = 1 - math.Pow(1-p, 3)
	}
	return a.from + (a.to-a.from)*eased
}

// AnimateOpen is part of the menu.Animator interface.
func (m *Model) AnimateOpen(mm *menu.Menu, done func()) {
	m.startAnimation(mm, &animation{dur: openDuration, from: 0, to: 1, done: done})
}

// AnimateClose is part of the menu.Animator interface.
func (m *Model) AnimateClose(mm *menu.Menu, done func()) {
	m.startAnimation(mm, &animation{dur: closeDuration, from: 1, to: closeEndHeight, closing: true, done: done})
}

func (m *Model) startAnimation(mm *menu.Menu, a *animation) {
	if prev := m.anims[mm]; prev != nil {
		delete(m.anims, mm)
		prev.done()
	}
	a.start = m.now()
	m.anims[mm] = a
	m.needTick = true
}

func (m *Model) handleAnimTickMsg(tea.Msg) tea.Cmd {
	m.ticking = false
	now := m.now()
	var finished []*animation
	for mm, a := range m.anims {
		if a.progress(now) >= 1 {
			delete(m.anims, mm)
			finished = append(finished, a)
		}
	}
	for _, a := range finished {
		a.done()
	}
	if len(m.anims) > 0 {
		m.needTick = true
	}
	return nil
}

// revealed is the share of mm's height to draw.
func (m *Model) revealed(mm *menu.Menu) float64 {
	a := m.anims[mm]
	if a == nil {
		return 1
	}
	return a.fraction(m.now())
}
