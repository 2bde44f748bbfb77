package player

import (
	"log"
	"sync"
)

// Registry is the process-wide guild → session directory. Creation and
// removal are atomic per guild; two concurrent first uses of the same guild
// observe the same session.
type Registry struct {
	mu        sync.Mutex
	transport Transport
	sessions  map[string]*Session
}

// NewRegistry returns an empty registry whose sessions connect through
// transport.
func NewRegistry(transport Transport) *Registry {
	return &Registry{
		transport: transport,
		sessions:  make(map[string]*Session),
	}
}

// GetOrCreate returns the session for a guild, creating it if absent.
func (r *Registry) GetOrCreate(guildID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[guildID]; ok {
		return s
	}
	s := NewSession(guildID, r.transport)
	r.sessions[guildID] = s
	log.Printf("[Player] Created session for guild %s", guildID)
	return s
}

// Get returns the session for a guild, if one exists.
func (r *Registry) Get(guildID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Remove deletes the guild's session and tears it down. The registry entry
// is removed before teardown runs, so a failing disconnect cannot leave a
// dead session registered.
func (r *Registry) Remove(guildID string) error {
	r.mu.Lock()
	s, ok := r.sessions[guildID]
	delete(r.sessions, guildID)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return s.Leave()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown tears down every session. Used on process exit.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		if err := s.Leave(); err != nil {
			log.Printf("[ERR] Error disconnecting session for guild %s: %v", s.GuildID(), err)
		}
	}
	if len(sessions) > 0 {
		log.Printf("[Player] Shut down %d session(s)", len(sessions))
	}
}
