package session

import (
	"sync"

	"utmbot/internal/domain"
)

// Store keeps per-user conversational state in memory. Events for one user
// arrive serially, but different users are handled concurrently, so the map
// is mutex-guarded. Nothing here survives a restart: an interrupted flow is
// simply restarted by the user.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*session
	pending  map[int64]struct{} // users asked to enter the access password
}

type session struct {
	flow    domain.Flow
	link    *domain.LinkState
	catalog *domain.CatalogState
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*session),
		pending:  make(map[int64]struct{}),
	}
}

// Flow returns the flow currently owning the user's session
func (s *Store) Flow(userID int64) domain.Flow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domain.FlowNone
	}
	return sess.flow
}

// StartLink resets the user's session to a fresh link-generation flow.
// Any other flow's partial state is discarded.
func (s *Store) StartLink(userID int64, baseURL string) *domain.LinkState {
	s.mu.Lock()
	defer s.mu.Unlock()

	link := &domain.LinkState{BaseURL: baseURL}
	s.sessions[userID] = &session{flow: domain.FlowLinkGeneration, link: link}
	return link
}

// Link returns the active link-generation state, or nil if the user is not
// in that flow
func (s *Store) Link(userID int64) *domain.LinkState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.flow != domain.FlowLinkGeneration {
		return nil
	}
	return sess.link
}

// StartCatalog resets the user's session to a fresh catalog-editing flow
func (s *Store) StartCatalog(userID int64) *domain.CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := &domain.CatalogState{}
	s.sessions[userID] = &session{flow: domain.FlowCatalogManagement, catalog: cat}
	return cat
}

// Catalog returns the active catalog-editing state, or nil
func (s *Store) Catalog(userID int64) *domain.CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.flow != domain.FlowCatalogManagement {
		return nil
	}
	return sess.catalog
}

// ArmPasswordChange marks the user's next text message as the new bot
// password. Supersedes any other flow, including an armed deletion.
func (s *Store) ArmPasswordChange(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &session{flow: domain.FlowPasswordChange}
}

// ArmUserDeletion marks the user's next text message as a user ID to delete
func (s *Store) ArmUserDeletion(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &session{flow: domain.FlowUserDeletion}
}

// Clear drops the user's session entirely
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// ClearIf drops the session only if the given flow still owns it.
// Returns whether anything was cleared.
func (s *Store) ClearIf(userID int64, flow domain.Flow) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.flow != flow {
		return false
	}
	delete(s.sessions, userID)
	return true
}

// AwaitPassword marks the user as prompted for the access password
func (s *Store) AwaitPassword(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = struct{}{}
}

// IsAwaitingPassword reports whether the user was prompted for the password
func (s *Store) IsAwaitingPassword(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pending[userID]
	return ok
}

// ForgetPassword drops the password prompt marker
func (s *Store) ForgetPassword(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
}
