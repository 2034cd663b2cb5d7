package interfaces

import (
	"context"

	"github.com/user/house-eternal/internal/types"
)

// SnapshotStore persists serialized game state under a key
type SnapshotStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// GameManager defines the interface for game operations
type GameManager interface {
	State() *types.GameState
	NewGame(cfg types.NewGameConfig) (*types.GameState, error)
	SetSpeed(speed types.Speed) error
	Tick() (types.TickReport, error)

	ArrangeMarriage(aID, bID string, matrilineal bool) (bool, error)
	InviteToCourt(characterID string) (bool, error)
	BanishFromCourt(characterID string) (bool, error)
	GrantTitle(characterID, titleID string) (bool, error)
	ResolveEvent(eventID string, choiceIndex int) (bool, error)
	SuccessionLine(characterID string, law types.SuccessionLaw) ([]string, error)

	SaveGame(ctx context.Context) error
	LoadGame(ctx context.Context) bool
	HasSave(ctx context.Context) bool
	DeleteSave(ctx context.Context) error
	ExitGame()
}
