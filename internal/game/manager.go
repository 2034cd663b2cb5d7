package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user/house-eternal/config"
	"github.com/user/house-eternal/internal/interfaces"
	"github.com/user/house-eternal/internal/storage"
	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
	"go.uber.org/zap"
)

var (
	// ErrNoGame is returned when an operation needs a running game
	ErrNoGame = errors.New("no game in progress")

	// ErrInvalidSpeed is returned for a speed outside 0, 1, 2, 4, 8
	ErrInvalidSpeed = errors.New("invalid speed")
)

const autosaveTimeout = 30 * time.Second

// GameManager is the single writer of the game state. Every write runs
// against a clone that is swapped in whole, so State() never exposes a
// partially applied change.
type GameManager struct {
	state     *types.GameState
	stateLock sync.RWMutex
	saveLock  sync.Mutex
	saves     sync.WaitGroup
	storage   interfaces.SnapshotStore
	config    config.Config
	tables    *world.Tables
	Logger    *zap.Logger
	rng       Rand
	engine    *Engine
	speedCh   chan struct{}
}

// Ensure GameManager satisfies the interfaces.GameManager interface
var _ interfaces.GameManager = (*GameManager)(nil)

// NewGameManager creates a new game manager. store may be nil, in which case
// saving reports an error and loading finds nothing.
func NewGameManager(cfg config.Config, tables *world.Tables, store interfaces.SnapshotStore) *GameManager {
	if tables == nil {
		tables = world.Default()
	}
	gm := &GameManager{
		storage: store,
		config:  cfg,
		tables:  tables,
		Logger:  zap.NewNop(), // Will be set by the server
		rng:     NewDiceRoller(),
		speedCh: make(chan struct{}, 1),
	}
	gm.rebuildEngine()
	return gm
}

func (gm *GameManager) rebuildEngine() {
	gm.engine = NewEngine(gm.tables, gm.rng, Options{
		EventProbability:     gm.config.Game.EventProbability,
		AutosaveInterval:     gm.config.Game.AutosaveIntervalWeeks,
		EventDeathSuccession: gm.config.Game.EventDeathSuccession,
	}, gm.Logger)
}

// SetLogger sets the logger used by the manager and its engine
func (gm *GameManager) SetLogger(logger *zap.Logger) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	gm.Logger = logger
	gm.rebuildEngine()
}

// SetRand replaces the random source
func (gm *GameManager) SetRand(rng Rand) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()
	gm.rng = rng
	gm.rebuildEngine()
}

// Tables returns the world data tables in use
func (gm *GameManager) Tables() *world.Tables {
	return gm.tables
}

// State returns the current snapshot, or nil when no game is running.
// Callers must treat it as read-only.
func (gm *GameManager) State() *types.GameState {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	return gm.state
}

// Speed returns the current simulation speed; 0 when no game is running
func (gm *GameManager) Speed() types.Speed {
	gm.stateLock.RLock()
	defer gm.stateLock.RUnlock()
	if gm.state == nil {
		return 0
	}
	return gm.state.Speed
}

// SpeedChanged signals after every speed change or new game
func (gm *GameManager) SpeedChanged() <-chan struct{} {
	return gm.speedCh
}

func (gm *GameManager) notifySpeed() {
	select {
	case gm.speedCh <- struct{}{}:
	default:
	}
}

// NewGame builds a fresh world and makes it current
func (gm *GameManager) NewGame(cfg types.NewGameConfig) (*types.GameState, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	state, err := gm.engine.NewWorld(cfg, gm.config.Game.RivalRealms)
	if err != nil {
		return nil, err
	}
	gm.state = state
	gm.notifySpeed()

	gm.Logger.Info("New game started",
		zap.String("dynasty_id", state.PlayerDynastyID),
		zap.String("character_id", state.PlayerCharacterID))
	return state, nil
}

// Tick advances the game by one week
func (gm *GameManager) Tick() (types.TickReport, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if gm.state == nil {
		return types.TickReport{}, ErrNoGame
	}

	next, report := gm.engine.Advance(gm.state)
	gm.state = next

	if report.Autosave {
		gm.autosave(next)
	}
	if report.GameOver && !report.Skipped {
		gm.Logger.Info("Game over",
			zap.String("reason", next.GameOverReason),
			zap.Int("week", next.CurrentWeek))
	}
	return report, nil
}

// SetSpeed changes the simulation speed
func (gm *GameManager) SetSpeed(speed types.Speed) error {
	if !speed.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, speed)
	}
	_, err := gm.mutate(func(s *types.GameState) bool {
		if s.Speed == speed {
			return false
		}
		s.Speed = speed
		return true
	})
	if err == nil {
		gm.notifySpeed()
	}
	return err
}

// mutate applies fn to a clone of the current state and swaps the clone in
// when fn reports success.
func (gm *GameManager) mutate(fn func(s *types.GameState) bool) (bool, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	if gm.state == nil {
		return false, ErrNoGame
	}
	next := gm.state.Clone()
	if !fn(next) {
		return false, nil
	}
	gm.state = next
	return true, nil
}

// ArrangeMarriage weds two characters
func (gm *GameManager) ArrangeMarriage(aID, bID string, matrilineal bool) (bool, error) {
	return gm.mutate(func(s *types.GameState) bool {
		return gm.engine.ArrangeMarriage(s, aID, bID, matrilineal)
	})
}

// InviteToCourt invites a character to the player's court
func (gm *GameManager) InviteToCourt(characterID string) (bool, error) {
	return gm.mutate(func(s *types.GameState) bool {
		return gm.engine.InviteToCourt(s, characterID)
	})
}

// BanishFromCourt removes a character from the player's court
func (gm *GameManager) BanishFromCourt(characterID string) (bool, error) {
	return gm.mutate(func(s *types.GameState) bool {
		return gm.engine.BanishFromCourt(s, characterID)
	})
}

// GrantTitle hands one of the player's titles to a character
func (gm *GameManager) GrantTitle(characterID, titleID string) (bool, error) {
	return gm.mutate(func(s *types.GameState) bool {
		return gm.engine.GrantTitle(s, characterID, titleID)
	})
}

// ResolveEvent resolves a pending event with the given choice
func (gm *GameManager) ResolveEvent(eventID string, choiceIndex int) (bool, error) {
	return gm.mutate(func(s *types.GameState) bool {
		return gm.engine.ResolveEvent(s, eventID, choiceIndex)
	})
}

// SuccessionLine returns the heirs of a character under law
func (gm *GameManager) SuccessionLine(characterID string, law types.SuccessionLaw) ([]string, error) {
	state := gm.State()
	if state == nil {
		return nil, ErrNoGame
	}
	if !law.Valid() {
		return nil, fmt.Errorf("unknown succession law %q", law)
	}
	return CalculateSuccessionLine(characterID, state.Characters, law), nil
}

// SaveGame persists the current state
func (gm *GameManager) SaveGame(ctx context.Context) error {
	state := gm.State()
	if state == nil {
		return ErrNoGame
	}
	return gm.persist(ctx, state)
}

func (gm *GameManager) persist(ctx context.Context, state *types.GameState) error {
	if gm.storage == nil {
		return errors.New("no storage configured")
	}
	data, err := EncodeState(state)
	if err != nil {
		return err
	}

	gm.saveLock.Lock()
	defer gm.saveLock.Unlock()

	if err := gm.storage.Save(ctx, SaveKey, data); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	gm.Logger.Info("Game saved",
		zap.Int("week", state.CurrentWeek),
		zap.Int("bytes", len(data)))
	return nil
}

// autosave persists a snapshot in the background. Snapshots are never
// mutated after the swap, so the goroutine can encode it without the lock.
func (gm *GameManager) autosave(state *types.GameState) {
	gm.saves.Add(1)
	go func() {
		defer gm.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
		defer cancel()
		if err := gm.persist(ctx, state); err != nil {
			gm.Logger.Error("Autosave failed",
				zap.Int("week", state.CurrentWeek),
				zap.Error(err))
		}
	}()
}

// WaitForSaves blocks until pending autosaves finish
func (gm *GameManager) WaitForSaves() {
	gm.saves.Wait()
}

// LoadGame replaces the current state with the stored one. It reports false
// when nothing is stored or the payload does not parse.
func (gm *GameManager) LoadGame(ctx context.Context) bool {
	if gm.storage == nil {
		return false
	}
	data, err := gm.storage.Load(ctx, SaveKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			gm.Logger.Error("Failed to load game state", zap.Error(err))
		}
		return false
	}
	state, err := DecodeState(data)
	if err != nil {
		gm.Logger.Warn("Stored game state is unreadable", zap.Error(err))
		return false
	}

	gm.stateLock.Lock()
	gm.state = state
	gm.stateLock.Unlock()
	gm.notifySpeed()

	gm.Logger.Info("Game loaded",
		zap.Int("week", state.CurrentWeek),
		zap.String("character_id", state.PlayerCharacterID))
	return true
}

// HasSave reports whether a stored game exists
func (gm *GameManager) HasSave(ctx context.Context) bool {
	if gm.storage == nil {
		return false
	}
	_, err := gm.storage.Load(ctx, SaveKey)
	return err == nil
}

// DeleteSave removes the stored game
func (gm *GameManager) DeleteSave(ctx context.Context) error {
	if gm.storage == nil {
		return nil
	}
	if err := gm.storage.Delete(ctx, SaveKey); err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// ExitGame drops the current game without saving
func (gm *GameManager) ExitGame() {
	gm.stateLock.Lock()
	gm.state = nil
	gm.stateLock.Unlock()
	gm.notifySpeed()
}
