package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/regimen/internal/error_values"
)

var (
	confirmTTL = time.Minute
)

type pendingDeletion struct {
	routineID int64
	accountID int64
	expiresAt time.Time
}

// confirmationStore holds armed routine deletions keyed by token.
// Tokens are single use: Take removes the entry whether or not it is
// still valid.
type confirmationStore struct {
	mu      sync.Mutex
	pending map[uuid.UUID]pendingDeletion
}

func newConfirmationStore() *confirmationStore {
	return &confirmationStore{
		pending: make(map[uuid.UUID]pendingDeletion),
	}
}

func (cs *confirmationStore) Arm(routineID, accountID int64) uuid.UUID {
	token := uuid.New()
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for t, p := range cs.pending {
		if time.Now().After(p.expiresAt) {
			delete(cs.pending, t)
		}
	}
	cs.pending[token] = pendingDeletion{
		routineID: routineID,
		accountID: accountID,
		expiresAt: time.Now().Add(confirmTTL),
	}
	return token
}

func (cs *confirmationStore) Take(token uuid.UUID, accountID int64) (int64, error) {
	cs.mu.Lock()
	p, ok := cs.pending[token]
	delete(cs.pending, token)
	cs.mu.Unlock()
	if !ok {
		return 0, errorvalues.ErrConfirmationNotFound
	}
	if time.Now().After(p.expiresAt) {
		return 0, errorvalues.ErrConfirmationExpired
	}
	if p.accountID != accountID {
		return 0, errorvalues.ErrWrongOwner
	}
	return p.routineID, nil
}
