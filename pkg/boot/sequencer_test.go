package boot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/scheduler"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func defaultSteps() []domain.BootStep {
	ms := []int{1000, 800, 700, 600, 500, 400, 600}
	texts := []string{
		"Initializing Dinahasina Portfolio OS...",
		"Loading Matrix core...",
		"Mounting filesystems...",
		"Starting networking services...",
		"Loading user profile...",
		"Initializing terminal interface...",
		"System ready. Welcome to the Matrix.",
	}
	steps := make([]domain.BootStep, len(ms))
	for i := range ms {
		steps[i] = domain.BootStep{Text: texts[i], Duration: time.Duration(ms[i]) * time.Millisecond}
	}
	return steps
}

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestSequencer_NaturalCompletion(t *testing.T) {
	sched := scheduler.New(epoch)
	calls := 0
	seq := New(sched, defaultSteps(), func() { calls++ })
	seq.Start()

	snap := seq.Snapshot()
	assert.Equal(t, 0, snap.Step)
	assert.Equal(t, 14, snap.Percent())
	assert.Empty(t, snap.Text)

	sched.Advance(at(90))
	assert.Equal(t, "Ini", seq.Snapshot().Text)

	sched.Advance(at(1000))
	snap = seq.Snapshot()
	assert.Equal(t, 1, snap.Step)
	assert.Equal(t, 29, snap.Percent())

	// Sum of durations is 4600ms.
	sched.Advance(at(4599))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 6, seq.Snapshot().Step)
	assert.Equal(t, 100, seq.Snapshot().Percent())

	sched.Advance(at(4600))
	assert.Equal(t, 1, calls)
	assert.True(t, seq.Done())
	assert.Equal(t, 0, sched.Pending(), "completion cancels every task")

	sched.Advance(at(20000))
	assert.Equal(t, 1, calls)
}

func TestSequencer_TypewriterRevealsFullText(t *testing.T) {
	sched := scheduler.New(epoch)
	steps := []domain.BootStep{{Text: "abc", Duration: time.Second}}
	seq := New(sched, steps, nil)
	seq.Start()

	sched.Advance(at(60))
	assert.Equal(t, "ab", seq.Snapshot().Text)
	sched.Advance(at(500))
	assert.Equal(t, "abc", seq.Snapshot().Text)
	assert.Equal(t, 2, sched.Pending(), "only the step and safety timers remain")
}

func TestSequencer_StepChangeCancelsTypewriter(t *testing.T) {
	sched := scheduler.New(epoch)
	steps := []domain.BootStep{
		{Text: "a long line that cannot finish in time", Duration: 100 * time.Millisecond},
		{Text: "b", Duration: time.Second},
	}
	seq := New(sched, steps, nil)
	seq.Start()

	sched.Advance(at(100))
	assert.Equal(t, 1, seq.Snapshot().Step)
	sched.Advance(at(400))
	assert.Equal(t, "b", seq.Snapshot().Text)
}

func TestSequencer_SkipKey(t *testing.T) {
	for _, r := range []rune{'s', 'S'} {
		sched := scheduler.New(epoch)
		calls := 0
		seq := New(sched, defaultSteps(), func() { calls++ })
		seq.Start()
		sched.Advance(at(1500))

		assert.True(t, seq.HandleKey(domain.RuneKey(r)))
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, sched.Pending())

		seq.Skip()
		sched.Advance(at(10000))
		assert.Equal(t, 1, calls)
	}
}

func TestSequencer_OtherKeysIgnored(t *testing.T) {
	sched := scheduler.New(epoch)
	seq := New(sched, defaultSteps(), func() { t.Fatal("unexpected completion") })
	seq.Start()

	assert.False(t, seq.HandleKey(domain.RuneKey('x')))
	assert.False(t, seq.HandleKey(domain.Key{Code: domain.KeyEnter}))
	assert.False(t, seq.Done())
	seq.Dispose()
}

func TestSequencer_SafetyTimeout(t *testing.T) {
	sched := scheduler.New(epoch)
	steps := []domain.BootStep{{Text: "stuck", Duration: time.Hour}}
	calls := 0
	seq := New(sched, steps, func() { calls++ }, WithSafetyTimeout(8*time.Second))
	seq.Start()

	sched.Advance(at(7999))
	assert.Equal(t, 0, calls)
	sched.Advance(at(8000))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, sched.Pending())
}

func TestSequencer_DisposeNeverCallsBack(t *testing.T) {
	sched := scheduler.New(epoch)
	seq := New(sched, defaultSteps(), func() { t.Fatal("disposed sequencer called back") })
	seq.Start()
	sched.Advance(at(500))

	seq.Dispose()
	assert.Equal(t, 0, sched.Pending())
	sched.Advance(at(60000))
	seq.Skip()
}

func TestSequencer_StartIsIdempotent(t *testing.T) {
	sched := scheduler.New(epoch)
	calls := 0
	seq := New(sched, defaultSteps(), func() { calls++ })
	seq.Start()
	pending := sched.Pending()
	seq.Start()
	assert.Equal(t, pending, sched.Pending())

	sched.Advance(at(60000))
	assert.Equal(t, 1, calls)
}

func TestSequencer_EmptyStepsCompleteOnStart(t *testing.T) {
	sched := scheduler.New(epoch)
	calls := 0
	New(sched, nil, func() { calls++ }).Start()
	require.Equal(t, 1, calls)
}

func TestSequencer_SkipBeforeStartIgnored(t *testing.T) {
	sched := scheduler.New(epoch)
	calls := 0
	seq := New(sched, defaultSteps(), func() { calls++ })
	seq.Skip()
	assert.Equal(t, 0, calls)
	assert.False(t, seq.Done())
}
