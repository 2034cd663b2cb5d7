package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/user/house-eternal/internal/types"
)

// SaveKey is the fixed key under which the game is persisted
const SaveKey = "house_eternal_save"

// EncodeState serializes a state snapshot
func EncodeState(s *types.GameState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game state: %w", err)
	}
	return data, nil
}

// DecodeState parses a snapshot and fills in any missing tables
func DecodeState(data []byte) (*types.GameState, error) {
	var state types.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse game state: %w", err)
	}
	if state.PlayerDynastyID == "" || state.PlayerCharacterID == "" {
		return nil, errors.New("game state has no player")
	}

	// Ensure all tables are initialized
	if state.Characters == nil {
		state.Characters = make(map[string]*types.Character)
	}
	if state.Dynasties == nil {
		state.Dynasties = make(map[string]*types.Dynasty)
	}
	if state.Titles == nil {
		state.Titles = make(map[string]*types.Title)
	}
	if state.Holdings == nil {
		state.Holdings = make(map[string]*types.Holding)
	}
	if state.Events == nil {
		state.Events = make([]*types.GameEvent, 0)
	}
	if state.EventLog == nil {
		state.EventLog = make([]*types.GameEvent, 0)
	}
	isNil := func(e *types.GameEvent) bool { return e == nil }
	state.Events = slices.DeleteFunc(state.Events, isNil)
	state.EventLog = slices.DeleteFunc(state.EventLog, isNil)
	for id, c := range state.Characters {
		if c == nil {
			delete(state.Characters, id)
		}
	}
	for id, t := range state.Titles {
		if t == nil {
			delete(state.Titles, id)
		}
	}
	for id, d := range state.Dynasties {
		if d == nil {
			delete(state.Dynasties, id)
		}
	}
	for id, h := range state.Holdings {
		if h == nil {
			delete(state.Holdings, id)
		}
	}
	return &state, nil
}
