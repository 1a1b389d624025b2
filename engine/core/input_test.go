package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraDeltaRequiresHeldButton(t *testing.T) {
	in := NewInputState(nil)
	in.ProcessMouseMove(100, 100)
	in.Update()

	in.ProcessMouseMove(150, 100)
	assert.Equal(t, float32(0), in.CameraDelta(200, 100).X)

	in.ProcessButton(BUTTON_LEFT, true)
	in.Update()
	in.ProcessMouseMove(200, 150)

	d := in.CameraDelta(200, 100)
	assert.InDelta(t, 0.25, d.X, 1e-6)
	assert.InDelta(t, 0.5, d.Y, 1e-6)
	assert.Equal(t, float32(0), d.Z)
}

func TestInputFiresEvents(t *testing.T) {
	bus := NewEventBus()
	in := NewInputState(bus)

	var pressed []uint16
	listener := struct{ name string }{"keys"}
	assert.True(t, bus.Register(EVENT_CODE_KEY_PRESSED, &listener, func(code SystemEventCode, sender, l interface{}, ctx EventContext) bool {
		pressed = append(pressed, ctx.Data.U16[0])
		return true
	}))
	assert.False(t, bus.Register(EVENT_CODE_KEY_PRESSED, &listener, nil))

	in.ProcessKey(KEY_SPACE, true)
	in.ProcessKey(KEY_SPACE, true)
	assert.Equal(t, []uint16{uint16(KEY_SPACE)}, pressed)
	assert.True(t, in.KeyPressed(KEY_SPACE))

	in.Update()
	assert.False(t, in.KeyPressed(KEY_SPACE))

	assert.True(t, bus.Unregister(EVENT_CODE_KEY_PRESSED, &listener))
	assert.False(t, bus.Unregister(EVENT_CODE_KEY_PRESSED, &listener))
}

func TestWheelAccumulatesPerFrame(t *testing.T) {
	in := NewInputState(nil)
	in.ProcessMouseWheel(1)
	in.ProcessMouseWheel(0.5)
	assert.Equal(t, float32(1.5), in.WheelDelta())
	in.Update()
	assert.Equal(t, float32(0), in.WheelDelta())
}
