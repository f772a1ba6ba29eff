package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"golang.org/x/exp/slices"
)

type Capability uint32

const (
	DepthTest   Capability = gl.DEPTH_TEST
	Blend       Capability = gl.BLEND
	ScissorTest Capability = gl.SCISSOR_TEST
)

type BlendFactor uint32

const (
	BlendZero             BlendFactor = gl.ZERO
	BlendOne              BlendFactor = gl.ONE
	BlendSrcAlpha         BlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha BlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type BlendEquation uint32

const (
	BlendFuncAdd BlendEquation = gl.FUNC_ADD
)

type DepthFunc uint32

const (
	DepthFuncLess   DepthFunc = gl.LESS
	DepthFuncLEqual DepthFunc = gl.LEQUAL
)

// StateManager caches bound objects and fixed function state to skip redundant gl calls.
// It assumes it is the only one changing that state on its context.
type StateManager struct {
	Caps                             map[Capability]bool
	TextureUnits                     []uint32
	SamplerUnits                     []uint32
	DrawFramebuffer, ReadFramebuffer uint32
	Program, VertexArray             uint32
	ViewportRect, ScissorRect        [4]int
	BlendFactorSrc, BlendFactorDst   BlendFactor
	BlendEquationMode                BlendEquation
	DepthFuncFn                      DepthFunc
	DepthWriteMask                   bool
	ClearColorRGBA                   [4]float32
	ClearDepthValue                  float64
}

// NewStateManager matches the gl defaults of a fresh context.
func NewStateManager() *StateManager {
	return &StateManager{
		Caps:              map[Capability]bool{},
		TextureUnits:      make([]uint32, 32),
		SamplerUnits:      make([]uint32, 32),
		BlendFactorSrc:    BlendOne,
		BlendFactorDst:    BlendZero,
		BlendEquationMode: BlendFuncAdd,
		DepthFuncFn:       DepthFuncLess,
		DepthWriteMask:    true,
		ClearDepthValue:   1,
		ViewportRect:      [4]int{-1, -1, -1, -1},
		ScissorRect:       [4]int{-1, -1, -1, -1},
	}
}

func (s *StateManager) Enable(cap Capability) {
	if s.Caps[cap] {
		return
	}
	gl.Enable(uint32(cap))
	s.Caps[cap] = true
}

func (s *StateManager) Disable(cap Capability) {
	if !s.Caps[cap] {
		return
	}
	gl.Disable(uint32(cap))
	s.Caps[cap] = false
}

// SetEnabled enables exactly the given capabilities and disables all others.
func (s *StateManager) SetEnabled(caps ...Capability) {
	for c, v := range s.Caps {
		if v && !slices.Contains(caps, c) {
			s.Disable(c)
		}
	}
	for _, c := range caps {
		s.Enable(c)
	}
}

func (s *StateManager) BlendFunc(sfactor, dfactor BlendFactor) {
	if s.BlendFactorSrc == sfactor && s.BlendFactorDst == dfactor {
		return
	}
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
	s.BlendFactorSrc = sfactor
	s.BlendFactorDst = dfactor
}

func (s *StateManager) BlendEquation(mode BlendEquation) {
	if s.BlendEquationMode == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.BlendEquationMode = mode
}

func (s *StateManager) DepthFunc(fn DepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *StateManager) DepthMask(flag bool) {
	if s.DepthWriteMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.DepthWriteMask = flag
}

func (s *StateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

func (s *StateManager) BindSampler(unit int, sampler uint32) {
	if s.SamplerUnits[unit] == sampler {
		return
	}
	gl.BindSampler(uint32(unit), sampler)
	s.SamplerUnits[unit] = sampler
}

func (s *StateManager) BindFramebuffer(target, framebuffer uint32) {
	if target == gl.DRAW_FRAMEBUFFER {
		s.BindDrawFramebuffer(framebuffer)
	} else if target == gl.READ_FRAMEBUFFER {
		s.BindReadFramebuffer(framebuffer)
	} else {
		if framebuffer == s.DrawFramebuffer && framebuffer == s.ReadFramebuffer {
			return
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
		s.DrawFramebuffer = framebuffer
		s.ReadFramebuffer = framebuffer
	}
}

func (s *StateManager) BindDrawFramebuffer(framebuffer uint32) {
	if s.DrawFramebuffer == framebuffer {
		return
	}
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, framebuffer)
	s.DrawFramebuffer = framebuffer
}

func (s *StateManager) BindReadFramebuffer(framebuffer uint32) {
	if s.ReadFramebuffer == framebuffer {
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, framebuffer)
	s.ReadFramebuffer = framebuffer
}

func (s *StateManager) UseProgram(program uint32) {
	if s.Program == program {
		return
	}
	gl.UseProgram(program)
	s.Program = program
}

func (s *StateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *StateManager) Viewport(x, y, w, h int) {
	if s.ViewportRect == [4]int{x, y, w, h} {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = [4]int{x, y, w, h}
}

func (s *StateManager) Scissor(x, y, w, h int) {
	if s.ScissorRect == [4]int{x, y, w, h} {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = [4]int{x, y, w, h}
}

func (s *StateManager) ClearColor(r, g, b, a float32) {
	if s.ClearColorRGBA == [4]float32{r, g, b, a} {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = [4]float32{r, g, b, a}
}

func (s *StateManager) ClearDepth(depth float64) {
	if s.ClearDepthValue == depth {
		return
	}
	gl.ClearDepth(depth)
	s.ClearDepthValue = depth
}

const (
	VendorIntel   = "intel"
	VendorNvidia  = "nvidia"
	VendorAmd     = "ati"
	VendorUnknown = "unknown"
)

// Environment describes the driver behind the current context.
type Environment struct {
	Vendor   string
	Renderer string
	Version  string
}

func GetEnvironment() *Environment {
	vendor := strings.ToLower(gl.GoStr(gl.GetString(gl.VENDOR)))
	if strings.Contains(vendor, "intel") {
		vendor = VendorIntel
	} else if strings.Contains(vendor, "nvidia") {
		vendor = VendorNvidia
	} else if strings.Contains(vendor, "ati ") || strings.Contains(vendor, "amd") {
		vendor = VendorAmd
	} else {
		vendor = VendorUnknown
	}
	return &Environment{
		Vendor:   vendor,
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
}
