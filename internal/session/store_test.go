package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramz1k999/diplomaproject/internal/health"
)

func TestGetOrCreate(t *testing.T) {
	st := NewStore(0, 0)

	s1 := st.Get(42)
	require.NotNil(t, s1)
	assert.Equal(t, int64(42), s1.UserID)
	assert.Nil(t, s1.Active)
	assert.Empty(t, s1.BMIHistory)

	s2 := st.Get(42)
	assert.Same(t, s1, s2, "same user must get the same session back")

	s3 := st.Get(43)
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, st.Len())
}

func TestDoSerializesPerUser(t *testing.T) {
	st := NewStore(0, 0)

	// Concurrent age increments would lose updates without per-user locking.
	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Do(7, func(s *Session) {
				if s.Active == nil {
					s.Active = &Progress{Kind: KindBMI, BMI: &BMIData{}}
				}
				s.Active.BMI.Age++
			})
		}()
	}
	wg.Wait()

	st.Do(7, func(s *Session) {
		assert.Equal(t, n, s.Active.BMI.Age)
	})
}

func TestDoAppliesEventsInAcquisitionOrder(t *testing.T) {
	st := NewStore(0, 0)

	var got []int
	done := make(chan struct{})

	// The first handler holds the session lock while "suspended"; the second
	// must not observe or mutate the session until the first finishes.
	go func() {
		st.Do(1, func(s *Session) {
			got = append(got, 1)
			time.Sleep(50 * time.Millisecond)
			got = append(got, 2)
		})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	st.Do(1, func(s *Session) {
		got = append(got, 3)
	})
	<-done

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestHistoryBounded(t *testing.T) {
	st := NewStore(0, 3)
	sess := st.Get(5)

	for i := 1; i <= 5; i++ {
		st.AppendBMI(sess, BMIRecord{Age: i})
	}
	require.Len(t, sess.BMIHistory, 3)
	assert.Equal(t, 3, sess.BMIHistory[0].Age, "oldest entries are dropped")
	assert.Equal(t, 5, sess.BMIHistory[2].Age)
}

func TestLastBMI(t *testing.T) {
	st := NewStore(0, 0)
	sess := st.Get(9)

	_, ok := sess.LastBMI()
	assert.False(t, ok)

	st.AppendBMI(sess, BMIRecord{WeightKg: 60})
	st.AppendBMI(sess, BMIRecord{WeightKg: 65})
	rec, ok := sess.LastBMI()
	require.True(t, ok)
	assert.Equal(t, 65, rec.WeightKg)
}

func TestTTLEviction(t *testing.T) {
	st := NewStore(20*time.Millisecond, 0)
	sess := st.Get(11)
	sess.Lang = "ru"

	time.Sleep(40 * time.Millisecond)

	fresh := st.Get(11)
	assert.NotSame(t, sess, fresh, "idle session must be evicted")
	assert.Empty(t, fresh.Lang)
}

func TestClearActiveKeepsHistory(t *testing.T) {
	st := NewStore(0, 0)
	sess := st.Get(3)
	st.AppendBMI(sess, BMIRecord{BMI: 22.5, Category: health.Normal})
	sess.Active = &Progress{Kind: KindWater, Water: &WaterData{WeightKg: 70}}

	sess.ClearActive()
	assert.Nil(t, sess.Active)
	assert.Len(t, sess.BMIHistory, 1)
}
