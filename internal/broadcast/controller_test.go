package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/bible"
	"bible-tui/internal/errors"
	"bible-tui/internal/logger"
)

func TestController_RejectsIncompleteSnapshot(t *testing.T) {
	c := NewController(NewMemory(logger.Discard()), logger.Discard())

	err := c.Publish(context.Background(), Snapshot{BookID: "GEN"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, ok := c.Last()
	assert.False(t, ok)
}

func TestController_AnswersReadyWithLastSnapshot(t *testing.T) {
	redisCh, _ := newRedisChannel(t)
	for name, ch := range map[string]Channel{"memory": NewMemory(logger.Discard()), "redis": redisCh} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := NewController(ch, logger.Discard())
			require.NoError(t, c.Start(ctx))
			defer c.Stop()

			require.NoError(t, c.Publish(ctx, john3()))

			r := NewReceiver(ch, Snapshot{}, logger.Discard())
			got := make(chan Snapshot, 4)
			detach, err := r.Attach(ctx, func(s Snapshot) { got <- s })
			require.NoError(t, err)
			defer detach()

			select {
			case s := <-got:
				assert.Equal(t, john3(), s)
			case <-time.After(waitFor):
				t.Fatal("late subscriber never received the retained snapshot")
			}
		})
	}
}

func TestController_SilentBeforeFirstPublish(t *testing.T) {
	ch := NewMemory(logger.Discard())
	ctx := context.Background()
	c := NewController(ch, logger.Discard())
	require.NoError(t, c.Start(ctx))
	defer c.Stop()

	var r recorder
	unsub, err := ch.Subscribe(ctx, r.handle)
	require.NoError(t, err)
	defer unsub()

	require.NoError(t, ch.RequestReady(ctx))
	require.Eventually(t, func() bool { return r.readyCount() == 1 }, waitFor, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, r.snapshots())
}

func TestController_LastIsACopy(t *testing.T) {
	c := NewController(NewMemory(logger.Discard()), logger.Discard())
	snap := john3()
	require.NoError(t, c.Publish(context.Background(), snap))

	snap.Languages[0] = bible.Chinese
	got, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, bible.English, got.Languages[0])
}

func TestReceiver_MergesFieldByField(t *testing.T) {
	ch := NewMemory(logger.Discard())
	ctx := context.Background()
	initial := Snapshot{Version: "kjv", Languages: []bible.Language{bible.English}, FontSize: bible.FontMedium}
	r := NewReceiver(ch, initial, logger.Discard())

	detach, err := r.Attach(ctx, nil)
	require.NoError(t, err)
	defer detach()

	require.NoError(t, ch.Publish(ctx, Snapshot{BookID: "PSA", Chapter: 23}))

	require.Eventually(t, func() bool { return r.Current().BookID == "PSA" }, waitFor, 10*time.Millisecond)
	assert.Equal(t, Snapshot{
		BookID:    "PSA",
		Chapter:   23,
		Version:   "kjv",
		Languages: []bible.Language{bible.English},
		FontSize:  bible.FontMedium,
	}, r.Current())
}

// slowChannel delays publishes of the first chapter.
type slowChannel struct {
	*Memory
	delay time.Duration
}

func (s slowChannel) Publish(ctx context.Context, snap Snapshot) error {
	if snap.Chapter == 1 {
		time.Sleep(s.delay)
	}
	return s.Memory.Publish(ctx, snap)
}

func genesis(chapter int) Snapshot {
	return Snapshot{
		BookID: "GEN", Chapter: chapter, BookName: "Genesis", Version: "kjv",
		Languages: []bible.Language{bible.English}, FontSize: bible.FontMedium,
	}
}

func TestController_SlowerOlderPublishDoesNotWin(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(logger.Discard())
	defer func() { _ = mem.Close() }()
	c := NewController(slowChannel{Memory: mem, delay: 100 * time.Millisecond}, logger.Discard())

	r := NewReceiver(mem, Snapshot{}, logger.Discard())
	detach, err := r.Attach(ctx, nil)
	require.NoError(t, err)
	defer detach()

	// Reserved in selection order, published from separate goroutines.
	first, second := c.NextSeq(), c.NextSeq()
	errs := make(chan error, 2)
	go func() { errs <- c.PublishSeq(ctx, first, genesis(1)) }()
	time.Sleep(10 * time.Millisecond)
	go func() { errs <- c.PublishSeq(ctx, second, genesis(2)) }()
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.Chapter)
	assert.Eventually(t, func() bool { return r.Current().Chapter == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 2, r.Current().Chapter, "receiver must stay on the newest selection")
}

func TestController_DropsSupersededSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(logger.Discard())
	defer func() { _ = mem.Close() }()
	c := NewController(mem, logger.Discard())

	got := make(chan Snapshot, 4)
	unsub, err := mem.Subscribe(ctx, func(m Message) { got <- m.Snapshot })
	require.NoError(t, err)
	defer unsub()

	older, newer := c.NextSeq(), c.NextSeq()
	require.NoError(t, c.PublishSeq(ctx, newer, genesis(2)))
	require.NoError(t, c.PublishSeq(ctx, older, genesis(1)))

	last, _ := c.Last()
	assert.Equal(t, 2, last.Chapter)
	select {
	case s := <-got:
		assert.Equal(t, 2, s.Chapter)
	case <-time.After(time.Second):
		t.Fatal("newer snapshot not delivered")
	}
	select {
	case s := <-got:
		t.Fatalf("superseded snapshot delivered: chapter %d", s.Chapter)
	case <-time.After(100 * time.Millisecond):
	}
}
