package main

import (
	"fmt"

	"termframe"
	"termframe/runtime"
)

// counterState is the counter component's state: a count plus the
// theme it renders with.
type counterState struct {
	count int
	theme termframe.Theme
}

// incrementMsg and quitMsg are the two messages this component's
// EventToMsg ever produces.
type incrementMsg struct{ delta int }
type quitMsg struct{}

// counterComponent is the demo's root component: press up/k to
// increment, down/j to decrement, q or ctrl+c to quit.
type counterComponent struct {
	theme termframe.Theme
}

func (c counterComponent) Init() any {
	return counterState{theme: c.theme}
}

func (c counterComponent) EventToMsg(e runtime.Event, state any) runtime.EventResult {
	if e.Kind != runtime.EventKey {
		return runtime.Ignore()
	}
	switch e.Key {
	case "up":
		return runtime.Msg(incrementMsg{delta: 1})
	case "down":
		return runtime.Msg(incrementMsg{delta: -1})
	}
	switch e.Char {
	case 'k':
		return runtime.Msg(incrementMsg{delta: 1})
	case 'j':
		return runtime.Msg(incrementMsg{delta: -1})
	case 'q':
		return runtime.Msg(quitMsg{})
	}
	if e.Mods.Has(runtime.ModCtrl) && e.Char == 'c' {
		return runtime.Msg(quitMsg{})
	}
	return runtime.Ignore()
}

func (c counterComponent) Update(m runtime.Message, state any) runtime.UpdateResult {
	s := state.(counterState)
	switch msg := m.(type) {
	case incrementMsg:
		s.count += msg.delta
		return runtime.Reply(s)
	case quitMsg:
		return runtime.ReplyWith(s, runtime.Command{Type: runtime.CmdQuit})
	}
	return runtime.Reply(s)
}

func (c counterComponent) View(state any) termframe.RenderNode {
	s := state.(counterState)
	text := fmt.Sprintf("count: %d  (up/down or j/k, q to quit)", s.count)
	style := s.theme.Base
	return termframe.BoxNode{
		Style: &s.theme.Base,
		Children: []termframe.RenderNode{
			termframe.TextNode{Text: text, Style: &style},
		},
	}
}
