package session

import "sync"

const shardCount = 16

// Store maps chat ids to sessions. It is partitioned so unrelated chats
// never contend on a single lock, and it hands out a per-chat mutex that
// serializes a chat's whole read-modify-write sequence.
type Store struct {
	shards [shardCount]storeShard
}

type storeShard struct {
	mu        sync.Mutex
	sessions  map[int64]*Session
	chatLocks map[int64]*sync.Mutex
}

func NewStore() *Store {
	st := &Store{}
	for i := range st.shards {
		st.shards[i].sessions = make(map[int64]*Session)
		st.shards[i].chatLocks = make(map[int64]*sync.Mutex)
	}
	return st
}

func (s *Store) shard(chatID int64) *storeShard {
	return &s.shards[uint64(chatID)%shardCount]
}

// Get returns the session for chatID, or nil when the chat has none.
// It never fabricates a default.
func (s *Store) Get(chatID int64) *Session {
	sh := s.shard(chatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.sessions[chatID]
}

// Put replaces the chat's session wholesale (last write wins).
func (s *Store) Put(chatID int64, sess *Session) {
	sh := s.shard(chatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.sessions[chatID] = sess
}

// Clear removes the chat's session.
func (s *Store) Clear(chatID int64) {
	sh := s.shard(chatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.sessions, chatID)
}

// LockChat acquires the chat's mutex and returns its unlock function.
// Holding it makes the caller the chat's single-threaded actor; chats on
// other keys proceed in parallel.
func (s *Store) LockChat(chatID int64) (unlock func()) {
	sh := s.shard(chatID)
	sh.mu.Lock()
	lock, ok := sh.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		sh.chatLocks[chatID] = lock
	}
	sh.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}
