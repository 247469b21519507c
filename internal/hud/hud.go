// Package hud is the display-side consumer of quest and chat
// notifications. It keeps the strings a UI layer would bind to: the
// tracked objective line, overall progress, and the companion's chat
// bubble. Rendering itself is outside the core.
package hud

import (
	"fmt"

	"github.com/quietpond/straycat/internal/events"
)

// QuestHUD tracks what the quest panel and chat bubble should show.
// Accessed only from the game loop goroutine; no locks needed.
type QuestHUD struct {
	objectiveName  string
	objectiveIndex int
	questName      string
	questDone      bool
	progress       float64

	chatText  string
	chatUntil float64
	now       float64
}

// New creates a HUD subscribed to the given bus.
func New(bus *events.Bus) *QuestHUD {
	h := &QuestHUD{objectiveIndex: -1}
	bus.Subscribe(h.handle)
	return h
}

// handle folds gameplay notifications into display state.
func (h *QuestHUD) handle(e events.Event) {
	switch e.Type {
	case events.TypeObjectiveStarted:
		h.objectiveName = e.Text
		h.objectiveIndex = e.Index
		h.questDone = false
	case events.TypeQuestCompleted:
		h.questName = e.Text
		h.questDone = true
		h.objectiveName = ""
		h.objectiveIndex = -1
	case events.TypeChatRequested:
		// Single slot: a new message replaces whatever is showing.
		h.chatText = e.Text
		h.chatUntil = h.now + e.Duration
	}
}

// Update advances the HUD clock and records the quest progress shown on
// the tracker. Called once per tick after the gameplay systems run.
func (h *QuestHUD) Update(now, progress float64) {
	h.now = now
	h.progress = progress
}

// TrackerLine returns the quest panel text.
func (h *QuestHUD) TrackerLine() string {
	if h.questDone {
		return fmt.Sprintf("%s - complete!", h.questName)
	}
	if h.objectiveName == "" {
		return ""
	}
	return fmt.Sprintf("Objective: %s (%.0f%%)", h.objectiveName, h.progress*100)
}

// Progress returns the last recorded overall quest progress.
func (h *QuestHUD) Progress() float64 {
	return h.progress
}

// ChatBubble returns the companion's visible chat line, or "" once it
// has expired.
func (h *QuestHUD) ChatBubble() string {
	if h.now >= h.chatUntil {
		return ""
	}
	return h.chatText
}
