package player

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// State describes the primary connection/playback state of a session. The
// muted flag is orthogonal and tracked separately.
type State string

const (
	StateDisconnected State = "Disconnected"
	StateIdle         State = "Idle"
	StatePlaying      State = "Playing"
)

var (
	// ErrNotConnected reports a playback operation on a disconnected session.
	ErrNotConnected = errors.New("not connected to a voice channel")
	// ErrNothingPlaying reports a playback operation with no active track.
	// Callers treat it as an informational no-op, not a failure.
	ErrNothingPlaying = errors.New("no track is currently playing")
)

// Session is the per-guild voice state machine. It owns the track queue, the
// current-track slot and the voice connection. Every state-mutating operation
// takes the session mutex, so commands and track-end signals are applied in
// the order they win the lock; reads go through the same lock and return
// copies.
//
// Playback runs in a dedicated goroutine per track. Each start bumps a
// generation counter; the goroutine reports completion tagged with its
// generation, and a report that lost a race against skip/stop/leave carries a
// stale generation and is ignored.
type Session struct {
	mu        sync.Mutex
	guildID   string
	transport Transport

	conn    Connection
	current *Track
	queue   *Queue
	muted   bool

	gen  uint64
	stop chan struct{} // closed to preempt the running playback
	done chan struct{} // closed by the playback goroutine right before it exits
}

// NewSession creates a disconnected session for a guild.
func NewSession(guildID string, transport Transport) *Session {
	return &Session{
		guildID:   guildID,
		transport: transport,
		queue:     NewQueue(),
	}
}

// GuildID returns the guild this session belongs to.
func (s *Session) GuildID() string {
	return s.guildID
}

// Join connects the session to a voice channel. Joining the channel the
// session is already in is a no-op; joining a different channel tears the old
// connection down first and restarts the current track, if any, on the new
// one.
func (s *Session) Join(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joinLocked(channelID)
}

func (s *Session) joinLocked(channelID string) error {
	if s.conn != nil {
		if s.conn.ChannelID() == channelID {
			return nil
		}
		s.cancelPlaybackLocked()
		if err := s.conn.Close(); err != nil {
			log.Printf("[Player] Error closing old voice connection for guild %s: %v", s.guildID, err)
		}
		s.conn = nil
	}

	conn, err := s.transport.Join(s.guildID, channelID)
	if err != nil {
		return fmt.Errorf("join voice channel %s: %w", channelID, err)
	}
	conn.SetMute(s.muted)
	s.conn = conn
	log.Printf("[Player] Joined voice channel %s on guild %s", channelID, s.guildID)

	if s.current != nil {
		s.startLocked(s.current)
	}
	return nil
}

// Leave disconnects from voice, cancels any in-flight playback and clears
// both the current track and the queue. It is a no-op on a disconnected
// session. The connection reference is dropped even if closing it errors, so
// a failed teardown cannot leave a live handle behind.
func (s *Session) Leave() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPlaybackLocked()
	s.current = nil
	s.queue.Clear()

	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	log.Printf("[Player] Leaving voice channel on guild %s", s.guildID)
	return conn.Close()
}

// Play appends tracks to the queue, joining channelID first when the session
// is disconnected. If nothing is playing, the queue head is promoted and
// playback starts. It returns the track that started playing now, or nil if
// the tracks were only enqueued.
//
// A failed join discards the tracks and leaves the session unchanged.
func (s *Session) Play(channelID string, tracks ...*Track) (*Track, error) {
	if len(tracks) == 0 {
		return nil, errors.New("no tracks to enqueue")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		if err := s.joinLocked(channelID); err != nil {
			return nil, err
		}
	}

	for _, t := range tracks {
		s.queue.Push(t)
	}
	log.Printf("[Player] Added %d track(s) to queue | guild=%s queueLen=%d", len(tracks), s.guildID, s.queue.Len())

	if s.current != nil {
		return nil, nil
	}
	s.advanceLocked()
	return s.current, nil
}

// Skip cancels the current track and advances up to n steps, counting the
// current track as the first. It returns the track playing after the skip
// (nil when the queue ran out) and the number of steps actually taken.
func (s *Session) Skip(n int) (*Track, int, error) {
	if n < 1 {
		n = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil, 0, ErrNotConnected
	}
	if s.current == nil {
		return nil, 0, ErrNothingPlaying
	}

	s.cancelPlaybackLocked()

	skipped := 0
	for skipped < n && s.current != nil {
		s.current = s.queue.Pop()
		skipped++
	}

	if s.current != nil {
		s.startLocked(s.current)
	}
	log.Printf("[Player] Skipped %d track(s) on guild %s | queueLen=%d", skipped, s.guildID, s.queue.Len())
	return s.current, skipped, nil
}

// Stop cancels playback and empties the queue without disconnecting. The
// session always ends Idle; ErrNothingPlaying only signals that there was
// nothing to stop.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return ErrNotConnected
	}
	noop := s.current == nil && s.queue.Len() == 0

	s.cancelPlaybackLocked()
	s.current = nil
	s.queue.Clear()

	if noop {
		return ErrNothingPlaying
	}
	log.Printf("[Player] Playback stopped and queue cleared on guild %s", s.guildID)
	return nil
}

// Mute stops audio emission at the transport. The stream keeps decoding and
// the queue and current track are untouched. Returns false if already muted.
func (s *Session) Mute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.muted {
		return false
	}
	s.muted = true
	if s.conn != nil {
		s.conn.SetMute(true)
	}
	return true
}

// Unmute restores audio emission. Returns false if not muted.
func (s *Session) Unmute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.muted {
		return false
	}
	s.muted = false
	if s.conn != nil {
		s.conn.SetMute(false)
	}
	return true
}

// Muted reports whether the session is muted.
func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Now returns the currently playing track, or nil.
func (s *Session) Now() *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// List returns a copy of up to limit queued tracks in playback order.
func (s *Session) List(limit int) []*Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.List(limit)
}

// QueueLen returns the number of pending tracks.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// State returns the primary state of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.conn == nil:
		return StateDisconnected
	case s.current != nil:
		return StatePlaying
	default:
		return StateIdle
	}
}

// Connected reports whether the session has a voice connection.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// ChannelID returns the connected voice channel, or "" when disconnected.
func (s *Session) ChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ""
	}
	return s.conn.ChannelID()
}

// advanceLocked promotes the queue head to the current-track slot and starts
// it, or goes Idle when the queue is empty. Callers hold s.mu.
func (s *Session) advanceLocked() {
	s.current = s.queue.Pop()
	if s.current == nil {
		s.stop = nil
		s.done = nil
		log.Printf("[Player] Queue exhausted on guild %s, going idle", s.guildID)
		return
	}
	s.startLocked(s.current)
}

// startLocked launches the playback goroutine for a track. Callers hold s.mu.
func (s *Session) startLocked(track *Track) {
	s.gen++
	gen := s.gen
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop = stop
	s.done = done
	conn := s.conn

	log.Printf("[Player] Now playing %q on guild %s | queueLen=%d", track.Title, s.guildID, s.queue.Len())

	go func() {
		err := conn.Play(track, stop)
		close(done)
		s.trackEnded(gen, track, err)
	}()
}

// trackEnded is the completion signal from the playback goroutine. A stale
// generation means a skip/stop/leave already superseded this track.
func (s *Session) trackEnded(gen uint64, track *Track, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	if err != nil {
		log.Printf("[WARN] Stream failed for track %q on guild %s, advancing: %v", track.Title, s.guildID, err)
	}
	s.advanceLocked()
}

// cancelPlaybackLocked preempts the running playback goroutine and waits for
// it to exit. Bumping the generation first makes the goroutine's completion
// signal stale, and the goroutine closes done without taking s.mu, so waiting
// here cannot deadlock. Callers hold s.mu.
func (s *Session) cancelPlaybackLocked() {
	s.gen++
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
}
