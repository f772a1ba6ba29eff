package main

import (
	"flag"
	"log"
	"runtime"
	"strings"
	"unsafe"

	"stereo-gl/libcfg"
	"stereo-gl/libgl"
	"stereo-gl/librender"
	"stereo-gl/libscn"
	"stereo-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var Arguments struct {
	ConfigPath                 string
	IndexType                  string
	NoEmulator                 bool
	EnableCompatibilityProfile bool
}

func main() {
	flag.StringVar(&Arguments.ConfigPath, "config", libcfg.DefaultConfigFile, "path of the yaml config file")
	flag.StringVar(&Arguments.IndexType, "index-type", "", "index width override: uint8, uint16, uint32 or auto")
	flag.BoolVar(&Arguments.NoEmulator, "no-emulator", false, "do not offer the emulated head-mounted display")
	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.Parse()

	cfg, err := libcfg.LoadFromPath(Arguments.ConfigPath)
	check(err)
	if Arguments.IndexType != "" {
		cfg.Render.IndexType = Arguments.IndexType
	}
	if Arguments.NoEmulator {
		cfg.Hmd.Emulate = false
	}
	check(cfg.Validate())

	// reject bad geometry before a context exists
	geometry := libscn.Cube()
	check(geometry.Validate())

	indexType, err := librender.ResolveIndexType(cfg.Render.IndexType, geometry.VertexCount())
	check(err)

	runtime.LockOSThread()
	win, err := initGLFW(cfg)
	check(err)
	defer glfw.Terminate()
	check(initGL(cfg))

	app, err := NewApp(win, cfg, geometry, indexType)
	check(err)
	defer app.Delete()

	win.Show()
	app.Run()
}

func initGLFW(cfg *libcfg.Config) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	if Arguments.EnableCompatibilityProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Render.DebugContext {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.Window.Vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return win, nil
}

var vendorSuffixes = []string{"3DFX", "PGI", "SGIX", "SGIS", "SGI", "IBM", "HP", "NV", "NVX", "INGR", "ARB", "EXT", "AMD", "ATI", "MESA", "KHR", "INTEL", "GREMEDY", "APPLE", "OES", "SUN", "SUNX"}

func hasVendorSuffix(name string) bool {
	for _, suffix := range vendorSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func initGL(cfg *libcfg.Config) error {
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			if !hasVendorSuffix(name) {
				log.Printf("Proc missing: %v\n", name)
			}
			return unsafe.Pointer(libutil.InvalidAddress)
		}
		return addr
	})
	if err != nil {
		return err
	}
	if cfg.Render.DebugContext {
		libgl.EnableDebugOutput()
	}
	return nil
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
