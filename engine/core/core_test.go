package core

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func TestLoggerReportsCaller(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(io.Discard)

	Logger().Error("direct", "key", "value")
	LogError("helper %s", "100%")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, string(line), "core_test.go")
	}
	assert.Contains(t, string(lines[0]), "key=value")
	assert.Contains(t, string(lines[1]), "helper 100%")
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
		err  bool
	}{
		{in: "debug", want: DebugLevel},
		{in: " INFO ", want: InfoLevel},
		{in: "", want: InfoLevel},
		{in: "warning", want: WarnLevel},
		{in: "error", want: ErrorLevel},
		{in: "verbose", want: InfoLevel, err: true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseLogLevel(c.in)
			if c.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var order []string

	first := func(ctx EventContext) bool {
		order = append(order, "first")
		return false
	}
	second := func(ctx EventContext) bool {
		order = append(order, "second")
		return ctx.Data.(*BodyRespawnedEvent).Name == "player"
	}

	require.True(t, bus.Register(EVENT_CODE_BODY_RESPAWNED, "a", first))
	require.True(t, bus.Register(EVENT_CODE_BODY_RESPAWNED, "b", second))
	assert.False(t, bus.Register(EVENT_CODE_BODY_RESPAWNED, "a", first))

	handled := bus.Fire(EventContext{Type: EVENT_CODE_BODY_RESPAWNED, Data: &BodyRespawnedEvent{Name: "player"}})
	assert.True(t, handled)
	assert.Equal(t, []string{"first", "second"}, order)

	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_SCENE_SYNTHESIZED}))

	assert.True(t, bus.Unregister(EVENT_CODE_BODY_RESPAWNED, "a"))
	assert.False(t, bus.Unregister(EVENT_CODE_BODY_RESPAWNED, "a"))
	order = nil
	bus.Fire(EventContext{Type: EVENT_CODE_BODY_RESPAWNED, Data: &BodyRespawnedEvent{Name: "ball"}})
	assert.Equal(t, []string{"second"}, order)

	require.NoError(t, bus.Shutdown())
	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_BODY_RESPAWNED, Data: &BodyRespawnedEvent{}}))
}

func TestNilEventBus(t *testing.T) {
	var bus *EventBus
	assert.False(t, bus.Register(EVENT_CODE_APPLICATION_QUIT, "x", func(EventContext) bool { return true }))
	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.NoError(t, bus.Shutdown())
}

func TestTickMetrics(t *testing.T) {
	m := NewTickMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.010)
	}
	assert.InDelta(t, 10.0, m.TickTime(), 1e-9)
	assert.Zero(t, m.TPS())

	// 30 ticks so far; the next 71 push accumulated time past one second
	for i := 0; i < 71; i++ {
		m.Update(0.010)
	}
	tps, avg := m.Tick()
	assert.Equal(t, 100.0, tps)
	assert.InDelta(t, 10.0, avg, 1e-9)
}

func TestIdentifier(t *testing.T) {
	id := NewIdentifier()
	assert.NotEqual(t, id, NewIdentifier())
	assert.Len(t, id.Short(), 8)

	parsed, err := ParseIdentifier(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseIdentifier("not-an-id")
	assert.Error(t, err)
	assert.Equal(t, "abc", Identifier("abc").Short())
}
