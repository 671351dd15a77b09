package persist

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/keyxmakerx/sessiondesk/internal/client/state"
)

// RootKey is the storage key holding the persisted blob.
const RootKey = "root"

// snapshot is the persisted document. Only the auth slice is kept.
type snapshot struct {
	Auth state.State `json:"auth"`
}

// Persistor writes the auth state through an Encryptor on every change and
// reads it back at startup. Failures go to OnError and never stop the state
// from changing.
type Persistor struct {
	storage   Storage
	encryptor *Encryptor

	// OnError receives every persistence failure. Defaults to a slog warning.
	OnError func(error)
}

// NewPersistor creates a Persistor.
func NewPersistor(storage Storage, encryptor *Encryptor) *Persistor {
	return &Persistor{
		storage:   storage,
		encryptor: encryptor,
		OnError: func(err error) {
			slog.Warn("persisting client state failed", slog.Any("error", err))
		},
	}
}

// Rehydrate loads the persisted state. A missing, unreadable or undecryptable
// blob yields the zero (signed-out) state.
func (p *Persistor) Rehydrate() state.State {
	blob, err := p.storage.GetItem(RootKey)
	if err != nil {
		p.OnError(err)
		return state.State{}
	}
	if blob == "" {
		return state.State{}
	}

	plaintext, err := p.encryptor.Decrypt(blob)
	if err != nil {
		p.OnError(fmt.Errorf("rehydrating: %w", err))
		return state.State{}
	}

	var snap snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		p.OnError(fmt.Errorf("rehydrating: %w", err))
		return state.State{}
	}
	return snap.Auth
}

// Save persists s.
func (p *Persistor) Save(s state.State) {
	plaintext, err := json.Marshal(snapshot{Auth: s})
	if err != nil {
		p.OnError(fmt.Errorf("encoding state: %w", err))
		return
	}
	blob, err := p.encryptor.Encrypt(plaintext)
	if err != nil {
		p.OnError(fmt.Errorf("encrypting state: %w", err))
		return
	}
	if err := p.storage.SetItem(RootKey, blob); err != nil {
		p.OnError(err)
	}
}

// Attach saves store's state after every dispatch. Returns the unsubscribe
// func.
func (p *Persistor) Attach(store *state.Store) func() {
	return store.Subscribe(p.Save)
}

// Purge removes the persisted blob.
func (p *Persistor) Purge() {
	if err := p.storage.RemoveItem(RootKey); err != nil {
		p.OnError(err)
	}
}
