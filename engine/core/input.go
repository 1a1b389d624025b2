package core

import "github.com/spaghettifunk/softraster/engine/math"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_0         KeyCode = 0x30
	KEY_1         KeyCode = 0x31
	KEY_2         KeyCode = 0x32
	KEY_3         KeyCode = 0x33
	KEY_4         KeyCode = 0x34
	KEY_5         KeyCode = 0x35
	KEY_6         KeyCode = 0x36
	KEY_7         KeyCode = 0x37
	KEY_8         KeyCode = 0x38
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_D         KeyCode = 0x44
	KEY_H         KeyCode = 0x48
	KEY_P         KeyCode = 0x50
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_W         KeyCode = 0x57

	KEYS_MAX_KEYS KeyCode = 0xFF
)

// Mouse state structure
type MouseState struct {
	X       int32
	Y       int32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS + 1]bool
}

// InputState holds current and previous states for keyboard and mouse.
// The platform layer feeds it and the engine advances it once per frame.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState

	wheel  float32
	clickX int32
	clickY int32
	events *EventBus
}

// NewInputState creates the input state. events may be nil.
func NewInputState(events *EventBus) *InputState {
	return &InputState{events: events}
}

// Update copies current states to previous ones and clears the wheel
// accumulator. Call it after the frame consumed the input.
func (s *InputState) Update() {
	s.KeyboardPrevious = s.KeyboardCurrent
	s.MousePrevious = s.MouseCurrent
	s.wheel = 0
}

func (s *InputState) fire(code SystemEventCode, ctx EventContext) {
	if s.events != nil {
		s.events.Fire(code, s, ctx)
	}
}

// keyboard input
func (s *InputState) IsKeyDown(key KeyCode) bool {
	return s.KeyboardCurrent.Keys[key]
}

func (s *InputState) IsKeyUp(key KeyCode) bool {
	return !s.KeyboardCurrent.Keys[key]
}

func (s *InputState) WasKeyDown(key KeyCode) bool {
	return s.KeyboardPrevious.Keys[key]
}

// KeyPressed reports a key that went down during this frame.
func (s *InputState) KeyPressed(key KeyCode) bool {
	return s.IsKeyDown(key) && !s.WasKeyDown(key)
}

func (s *InputState) ProcessKey(key KeyCode, pressed bool) {
	// Only handle this if the state actually changed.
	if s.KeyboardCurrent.Keys[key] == pressed {
		return
	}
	s.KeyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	ctx := EventContext{}
	ctx.Data.U16[0] = uint16(key)
	s.fire(code, ctx)
}

// mouse input
func (s *InputState) IsButtonDown(button Button) bool {
	return s.MouseCurrent.Buttons[button]
}

func (s *InputState) WasButtonDown(button Button) bool {
	return s.MousePrevious.Buttons[button]
}

func (s *InputState) MousePosition() (int32, int32) {
	return s.MouseCurrent.X, s.MouseCurrent.Y
}

func (s *InputState) PreviousMousePosition() (int32, int32) {
	return s.MousePrevious.X, s.MousePrevious.Y
}

// ClickPosition is where the most recent button press happened.
func (s *InputState) ClickPosition() (int32, int32) {
	return s.clickX, s.clickY
}

// WheelDelta is the wheel movement accumulated during this frame.
func (s *InputState) WheelDelta() float32 {
	return s.wheel
}

func (s *InputState) ProcessButton(button Button, pressed bool) {
	if s.MouseCurrent.Buttons[button] == pressed {
		return
	}
	s.MouseCurrent.Buttons[button] = pressed
	if pressed {
		s.clickX, s.clickY = s.MouseCurrent.X, s.MouseCurrent.Y
	}

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	ctx := EventContext{}
	ctx.Data.U16[0] = uint16(button)
	s.fire(code, ctx)
}

func (s *InputState) ProcessMouseMove(x, y int32) {
	if s.MouseCurrent.X == x && s.MouseCurrent.Y == y {
		return
	}
	s.MouseCurrent.X = x
	s.MouseCurrent.Y = y

	ctx := EventContext{}
	ctx.Data.I32[0] = x
	ctx.Data.I32[1] = y
	s.fire(EVENT_CODE_MOUSE_MOVED, ctx)
}

func (s *InputState) ProcessMouseWheel(zDelta float32) {
	if zDelta == 0 {
		return
	}
	s.wheel += zDelta

	ctx := EventContext{}
	ctx.Data.F32[0] = zDelta
	s.fire(EVENT_CODE_MOUSE_WHEEL, ctx)
}

// CameraDelta returns the cursor movement of this frame normalized by the
// window size. XY carry the drag with the left button held (orbit), ZW the
// drag with the right button held (pan).
func (s *InputState) CameraDelta(width, height uint32) math.Vec4 {
	if width == 0 || height == 0 {
		return math.Vec4{}
	}
	dx := float32(s.MouseCurrent.X-s.MousePrevious.X) / float32(width)
	dy := float32(s.MouseCurrent.Y-s.MousePrevious.Y) / float32(height)

	out := math.Vec4{}
	if s.IsButtonDown(BUTTON_LEFT) && s.WasButtonDown(BUTTON_LEFT) {
		out.X, out.Y = dx, dy
	}
	if s.IsButtonDown(BUTTON_RIGHT) && s.WasButtonDown(BUTTON_RIGHT) {
		out.Z, out.W = dx, dy
	}
	return out
}
