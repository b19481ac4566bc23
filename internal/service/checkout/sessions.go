package checkout

import (
	"sync"

	"storefront/internal/domain"
)

// session is the transient checkout state for one browser session: where it
// sits in the buy -> ship -> summary flow, whether the processor dialog is
// open, and the snapshot captured at purchase time.
type session struct {
	stage      domain.Stage
	method     domain.PaymentMethod
	dialogOpen bool
	snapshot   *domain.PurchasedSnapshot
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

// get returns the session state, creating it in the buy stage on first use.
func (s *sessionStore) get(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[id]; ok {
		return sess
	}
	sess = &session{stage: domain.StageBuy}
	s.sessions[id] = sess
	return sess
}

// update applies fn under the store lock so stage transitions are atomic
// with respect to concurrent callbacks.
func (s *sessionStore) update(id string, fn func(*session) error) error {
	sess := s.get(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(sess)
}

func (s *sessionStore) view(id string) session {
	sess := s.get(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *sess
}
