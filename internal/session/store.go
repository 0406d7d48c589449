package session

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long an idle session survives before eviction.
const DefaultTTL = 24 * time.Hour

// DefaultHistoryLimit bounds each history list per user.
const DefaultHistoryLimit = 20

// Store maps a user ID to its Session. Sessions are created on first access
// and evicted after sitting idle for the configured TTL; an evicted session
// is indistinguishable from a user the bot has never seen.
type Store struct {
	cache        *gocache.Cache
	historyLimit int

	// mu only guards get-or-create; per-session locking is Session.mu.
	mu sync.Mutex
}

// NewStore builds a store with the given idle TTL and history bound. Zero
// values select the defaults; a negative TTL disables eviction.
func NewStore(ttl time.Duration, historyLimit int) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Store{
		cache:        gocache.New(ttl, 10*time.Minute),
		historyLimit: historyLimit,
	}
}

// Get returns the session for userID, creating an empty one on first access.
// Access refreshes the eviction deadline.
func (st *Store) Get(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	key := fmt.Sprintf("%d", userID)
	if v, ok := st.cache.Get(key); ok {
		sess := v.(*Session)
		st.cache.SetDefault(key, sess)
		return sess
	}
	sess := &Session{UserID: userID}
	st.cache.SetDefault(key, sess)
	return sess
}

// Do runs fn with the user's session locked. Every event for a user --
// message, button press, reminder firing -- goes through here, so events for
// the same user apply strictly in the order their handlers acquire the lock
// and never interleave mid-mutation, even across a slow generative call.
func (st *Store) Do(userID int64, fn func(*Session)) {
	sess := st.Get(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess)
}

// AppendBMI appends a record to the session's BMI history, holding the list
// to the configured bound by dropping the oldest entries.
func (st *Store) AppendBMI(sess *Session, rec BMIRecord) {
	sess.BMIHistory = append(sess.BMIHistory, rec)
	if n := len(sess.BMIHistory); n > st.historyLimit {
		sess.BMIHistory = sess.BMIHistory[n-st.historyLimit:]
	}
}

// AppendWorkout appends a record to the session's workout history with the
// same bound as AppendBMI.
func (st *Store) AppendWorkout(sess *Session, rec WorkoutRecord) {
	sess.WorkoutHistory = append(sess.WorkoutHistory, rec)
	if n := len(sess.WorkoutHistory); n > st.historyLimit {
		sess.WorkoutHistory = sess.WorkoutHistory[n-st.historyLimit:]
	}
}

// Len reports how many sessions are currently resident.
func (st *Store) Len() int {
	return st.cache.ItemCount()
}
