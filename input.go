package main

import (
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// input tracks key, mouse and scroll state between two polls.
type input struct {
	curr   inputState
	prev   inputState
	scroll float32
}

type inputState struct {
	cursorPos    mgl32.Vec2
	scroll       float32
	keys         []bool
	mousebuttons []bool
}

func NewInputManager(ctx *glfw.Window) *input {
	i := &input{
		curr: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
		prev: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
	}

	i.Update(ctx)
	i.prev.cursorPos = i.curr.cursorPos
	copy(i.prev.keys[:], i.curr.keys[:])
	copy(i.prev.mousebuttons[:], i.curr.mousebuttons[:])

	return i
}

// AddScroll accumulates wheel motion until the next Update.
func (i *input) AddScroll(y float64) {
	i.scroll += float32(y)
}

func (i *input) CursorDelta() mgl32.Vec2 {
	return i.curr.cursorPos.Sub(i.prev.cursorPos)
}

func (i *input) ScrollDelta() float32 {
	return i.curr.scroll
}

func (i *input) IsKeyTap(key glfw.Key) bool {
	return i.curr.keys[key] && !i.prev.keys[key]
}

func (i *input) IsMouseDown(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button]
}

func (i *input) Update(ctx *glfw.Window) {
	keys := i.prev.keys
	mousebuttons := i.prev.mousebuttons
	i.prev = i.curr
	cursorX, cursorY := ctx.GetCursorPos()

	for key := int(glfw.KeySpace); key <= int(glfw.KeyLast); key++ {
		keys[key] = ctx.GetKey(glfw.Key(key)) != glfw.Release
	}

	for button := 0; button <= int(glfw.MouseButtonLast); button++ {
		mousebuttons[button] = ctx.GetMouseButton(glfw.MouseButton(button)) != glfw.Release
	}

	i.curr = inputState{
		cursorPos:    mgl32.Vec2{float32(cursorX), float32(cursorY)},
		scroll:       i.scroll,
		keys:         keys,
		mousebuttons: mousebuttons,
	}
	i.scroll = 0
}

var namedKeys = map[string]glfw.Key{
	"space":     glfw.KeySpace,
	"enter":     glfw.KeyEnter,
	"tab":       glfw.KeyTab,
	"escape":    glfw.KeyEscape,
	"backspace": glfw.KeyBackspace,
	"insert":    glfw.KeyInsert,
	"delete":    glfw.KeyDelete,
	"home":      glfw.KeyHome,
	"end":       glfw.KeyEnd,
	"pageup":    glfw.KeyPageUp,
	"pagedown":  glfw.KeyPageDown,
	"print":     glfw.KeyPrintScreen,
}

// ParseKey resolves a key name like "V", "7", "F12" or "Space".
func ParseKey(name string) (glfw.Key, error) {
	name = strings.TrimSpace(name)
	upper := strings.ToUpper(name)
	if len(upper) == 1 {
		c := upper[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return glfw.KeyA + glfw.Key(c-'A'), nil
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0'), nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(upper, "F%d", &n); err == nil && fmt.Sprintf("F%d", n) == upper && n >= 1 && n <= 25 {
		return glfw.KeyF1 + glfw.Key(n-1), nil
	}
	if key, ok := namedKeys[strings.ToLower(name)]; ok {
		return key, nil
	}
	return glfw.KeyUnknown, fmt.Errorf("unknown key %q", name)
}
