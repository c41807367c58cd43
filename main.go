package main

import (
	"flag"
	"log"
	"runtime"
	"unsafe"

	"depth-precision/camera"
	"depth-precision/config"
	"depth-precision/libgl"
	"depth-precision/libutil"
	"depth-precision/render"
	"depth-precision/scene"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var Arguments struct {
	ConfigFile                 string
	EnableCompatibilityProfile bool
	DebugContext               bool
	VerboseDebug               bool
	Width, Height              int
	Fov                        float64
	VSync                      bool
}

type loopState int

const (
	running loopState = iota
	quitting
)

func main() {
	flag.StringVar(&Arguments.ConfigFile, "config", "", "optional TOML configuration file")
	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.BoolVar(&Arguments.DebugContext, "debug-context", true, "request a debug context and log driver messages")
	flag.BoolVar(&Arguments.VerboseDebug, "verbose-debug", false, "also log driver notifications")
	flag.IntVar(&Arguments.Width, "width", 0, "window width, overrides the configuration")
	flag.IntVar(&Arguments.Height, "height", 0, "window height, overrides the configuration")
	flag.Float64Var(&Arguments.Fov, "fov", 0, "vertical field of view in degrees, overrides the configuration")
	flag.BoolVar(&Arguments.VSync, "vsync", true, "wait for vertical sync, overrides the configuration")
	flag.Parse()

	cfg := loadConfig()

	runtime.LockOSThread()
	win := initGLFW(cfg.Window)
	initGL()

	var resources libutil.ReleaseStack

	programs, err := render.NewPrograms(shaderSources())
	check(err)
	libutil.Own(&resources, "programs", programs)

	imguiShader := newImguiPipeline()
	libutil.Own(&resources, "imgui_shader", imguiShader)
	gui := NewImGui(imguiShader)
	libutil.Own(&resources, "imgui", gui)

	fbWidth, fbHeight := win.GetFramebufferSize()
	target, err := render.NewTarget(fbWidth, fbHeight)
	if err != nil {
		log.Panic(err)
	}
	libutil.Own(&resources, "target", target)
	scenePass := libutil.Own(&resources, "scene_pass", render.NewScenePass(target, programs))
	presentPass := libutil.Own(&resources, "present_pass", render.NewPresentPass(target, programs, fbWidth, fbHeight))

	queue := &EventQueue{}
	installCallbacks(win, gui.IO, queue)

	settings := cfg.Settings()
	cameras := cfg.CameraSystem()
	smoothProps := cfg.SmoothProps()
	goal, live := cfg.Pose(), cfg.Pose()

	winWidth, winHeight := win.GetSize()
	aspect := float32(fbWidth) / float32(fbHeight)
	projector, err := scene.NewProjector(settings.Frustum(aspect))
	check(err)

	overlay := &Overlay{}
	state := running
	lastTime := glfw.GetTime()

	for state == running {
		glfw.PollEvents()

		for _, e := range queue.Drain(gui.WantsMouse(), gui.WantsKeyboard()) {
			if e.Kind == camera.Quit {
				state = quitting
				continue
			}
			cameras.HandleEvent(e)
		}
		if state == quitting {
			break
		}

		now := glfw.GetTime()
		dt := float32(now - lastTime)
		lastTime = now

		goal = cameras.Step(goal, dt)
		live = camera.Smooth(live, goal, smoothProps, dt)

		projections := projector.Update(settings.Frustum(aspect))
		frame := settings.Snapshot(live.View(), projections[settings.DepthMode()])

		scenePass.Render(frame)
		presentPass.Render(frame)

		cursorX, cursorY := win.GetCursorPos()
		probe := target.Probe(frame, mgl32.Vec2{float32(cursorX), float32(cursorY)}, winWidth, winHeight)

		dumpClicked := overlay.Draw(settings, live, probe, dt)
		if dumpClicked || queue.TakeDumpRequest() {
			path, err := captureDump(target, frame, live)
			if err != nil {
				log.Printf("could not dump framebuffer: %v\n", err)
			}
			overlay.SetDumpResult(path, err)
		}
		gui.Draw()

		win.SwapBuffers()
	}

	resources.Release()
	gui.Destroy()
	glfw.Terminate()
}

func loadConfig() config.Config {
	cfg := config.Default()
	if Arguments.ConfigFile != "" {
		var err error
		cfg, err = config.LoadFile(Arguments.ConfigFile)
		if err != nil {
			log.Fatalf("could not load configuration: %v", err)
		}
	}

	// only flags given on the command line override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Window.Width = Arguments.Width
		case "height":
			cfg.Window.Height = Arguments.Height
		case "fov":
			cfg.Camera.Fov = float32(Arguments.Fov)
		case "vsync":
			cfg.Window.VSync = Arguments.VSync
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}
	return cfg
}

func initGLFW(window config.Window) *glfw.Window {
	err := glfw.Init()
	check(err)

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	if Arguments.DebugContext {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	if Arguments.EnableCompatibilityProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	win, err := glfw.CreateWindow(window.Width, window.Height, "Depth Precision", nil, nil)
	check(err)
	win.MakeContextCurrent()

	if window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return win
}

func initGL() {
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(libutil.InvalidAddress)
		}
		return addr
	})
	check(err)

	libgl.State = libgl.NewGlStateManager()
	libgl.GlEnv = libgl.GetGlEnv()
	log.Printf("%v (%v)\n", libgl.GlEnv.Renderer, libgl.GlEnv.Version)
	if err := libgl.GlEnv.Require(4, 5); err != nil {
		log.Fatal(err)
	}
	if Arguments.DebugContext {
		libgl.EnableDebugOutput(Arguments.VerboseDebug)
	}
}

func newImguiPipeline() libgl.UnboundShaderPipeline {
	vert, err := libgl.NewShader(Res_ImguiVshSrc, gl.VERTEX_SHADER)
	check(err)
	if err := vert.Compile(); err != nil {
		log.Printf("%v\n", err)
	}
	frag, err := libgl.NewShader(Res_ImguiFshSrc, gl.FRAGMENT_SHADER)
	check(err)
	if err := frag.Compile(); err != nil {
		log.Printf("%v\n", err)
	}
	pipeline := libgl.NewPipelineOf(vert, frag)
	pipeline.SetDebugLabel("imgui")
	return &ownedPipeline{UnboundShaderPipeline: pipeline, stages: []libgl.ShaderProgram{vert, frag}}
}

// ownedPipeline deletes its stage programs together with the pipeline.
type ownedPipeline struct {
	libgl.UnboundShaderPipeline
	stages []libgl.ShaderProgram
}

func (p *ownedPipeline) Delete() {
	p.UnboundShaderPipeline.Delete()
	for _, s := range p.stages {
		s.Delete()
	}
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
