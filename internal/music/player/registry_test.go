package player

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreateReturnsSameSession(t *testing.T) {
	reg := NewRegistry(&fakeTransport{})

	s1 := reg.GetOrCreate("guild-1")
	s2 := reg.GetOrCreate("guild-1")
	assert.Same(t, s1, s2)

	other := reg.GetOrCreate("guild-2")
	assert.NotSame(t, s1, other)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry(&fakeTransport{})

	_, ok := reg.Get("guild-1")
	assert.False(t, ok)

	created := reg.GetOrCreate("guild-1")
	got, ok := reg.Get("guild-1")
	require.True(t, ok)
	assert.Same(t, created, got)
}

func TestRegistryConcurrentFirstUse(t *testing.T) {
	reg := NewRegistry(&fakeTransport{})

	const workers = 32
	sessions := make([]*Session, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = reg.GetOrCreate("guild-1")
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, reg.Len())
	for _, s := range sessions {
		assert.Same(t, sessions[0], s)
	}
}

func TestRegistryConcurrentPlayLosesNoTracks(t *testing.T) {
	tr := &fakeTransport{}
	reg := NewRegistry(tr)
	defer reg.Shutdown()

	const plays = 16
	var wg sync.WaitGroup
	for i := 0; i < plays; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := reg.GetOrCreate("guild-1")
			_, err := sess.Play("vc-1", &Track{Title: fmt.Sprintf("t%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, reg.Len())
	sess, ok := reg.Get("guild-1")
	require.True(t, ok)

	// one track is playing, the rest are queued; none were dropped
	require.NotNil(t, sess.Now())
	assert.Equal(t, plays-1, sess.QueueLen())
	assert.Equal(t, 1, tr.joinCount())
}

func TestRegistryRemoveTearsDownSession(t *testing.T) {
	tr := &fakeTransport{}
	reg := NewRegistry(tr)

	sess := reg.GetOrCreate("guild-1")
	_, err := sess.Play("vc-1", &Track{Title: "a"})
	require.NoError(t, err)
	conn := tr.lastConn()
	waitStarted(t, conn)

	require.NoError(t, reg.Remove("guild-1"))
	_, ok := reg.Get("guild-1")
	assert.False(t, ok)
	assert.True(t, conn.Closed())
	assert.Equal(t, StateDisconnected, sess.State())

	// removing an unknown guild is a no-op
	require.NoError(t, reg.Remove("guild-1"))
}

func TestRegistryShutdownDisconnectsEverySession(t *testing.T) {
	tr := &fakeTransport{}
	reg := NewRegistry(tr)

	for i := 0; i < 3; i++ {
		sess := reg.GetOrCreate(fmt.Sprintf("guild-%d", i))
		_, err := sess.Play(fmt.Sprintf("vc-%d", i), &Track{Title: "t"})
		require.NoError(t, err)
	}

	reg.Shutdown()
	assert.Equal(t, 0, reg.Len())
	for _, conn := range tr.conns {
		assert.True(t, conn.Closed())
	}
}
