package main

import (
	"unsafe"

	"depth-precision/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// imguiKeys are the navigation and shortcut keys imgui reads from its key array.
var imguiKeys = map[int]glfw.Key{
	imgui.KeyTab:        glfw.KeyTab,
	imgui.KeyLeftArrow:  glfw.KeyLeft,
	imgui.KeyRightArrow: glfw.KeyRight,
	imgui.KeyUpArrow:    glfw.KeyUp,
	imgui.KeyDownArrow:  glfw.KeyDown,
	imgui.KeyHome:       glfw.KeyHome,
	imgui.KeyEnd:        glfw.KeyEnd,
	imgui.KeyDelete:     glfw.KeyDelete,
	imgui.KeyBackspace:  glfw.KeyBackspace,
	imgui.KeyEnter:      glfw.KeyEnter,
	imgui.KeyEscape:     glfw.KeyEscape,
	imgui.KeyA:          glfw.KeyA,
	imgui.KeyC:          glfw.KeyC,
	imgui.KeyV:          glfw.KeyV,
	imgui.KeyX:          glfw.KeyX,
}

// ImGui renders the overlay with the same state manager as the passes.
type ImGui struct {
	IO        imgui.IO
	FrameTime float32
	context   *imgui.Context
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     libgl.UnboundTexture
	shader    libgl.UnboundShaderPipeline
}

// NewImGui creates the imgui context and its GPU resources. Input is fed by the window callbacks in input.go.
func NewImGui(shader libgl.UnboundShaderPipeline) *ImGui {
	context := imgui.CreateContext(nil)

	io := imgui.CurrentIO()
	win := glfw.GetCurrentContext()
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("imgui_vertices")
	vbo.AllocateEmptyMutable(1024*vertexSize, gl.STREAM_DRAW)
	ebo := libgl.NewBuffer()
	ebo.SetDebugLabel("imgui_indices")
	ebo.AllocateEmptyMutable(1024*imgui.IndexBufferLayout(), gl.STREAM_DRAW)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("imgui")
	vao.Layout(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Layout(0, 1, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)
	vao.BindBuffer(0, vbo, 0, vertexSize)
	vao.BindElementBuffer(ebo)

	image := io.Fonts().TextureDataRGBA32()
	atlas := libgl.NewTexture2D()
	atlas.SetDebugLabel("imgui_font_atlas")
	atlas.Allocate(1, gl.RGBA8, image.Width, image.Height)
	atlas.Load(0, image.Width, image.Height, gl.RGBA, unsafe.Slice((*byte)(image.Pixels), image.Width*image.Height*4))
	io.Fonts().SetTextureID(imgui.TextureID(atlas.Id()))

	for imguiKey, key := range imguiKeys {
		io.KeyMap(imguiKey, int(key))
	}

	return &ImGui{
		IO:        io,
		FrameTime: float32(glfw.GetTime()),
		context:   context,
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		atlas:     atlas,
		shader:    shader,
	}
}

// WantsMouse reports whether the overlay consumes mouse input this frame.
func (gui *ImGui) WantsMouse() bool {
	return gui.IO.WantCaptureMouse()
}

// WantsKeyboard reports whether the overlay consumes keyboard input this frame.
func (gui *ImGui) WantsKeyboard() bool {
	return gui.IO.WantCaptureKeyboard()
}

func (gui *ImGui) Draw() {
	libgl.PushDebugGroup("Draw ImGui")
	defer libgl.PopDebugGroup()

	win := glfw.GetCurrentContext()

	dispWidth, dispHeight := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()
	libgl.State.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	gui.IO.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	time := float32(glfw.GetTime())
	gui.IO.SetDeltaTime(time - gui.FrameTime)
	gui.FrameTime = time

	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.Get(gl.VERTEX_SHADER).SetUniform("u_proj_mat", ortho)

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	libgl.State.BindSampler(0, 0)

	imgui.Render()
	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	indexType, indexSize := imguiIndexType()
	for _, list := range drawData.CommandLists() {
		gui.drawList(list, indexType, indexSize, fbHeight)
	}
	libgl.State.SetEnabled()
}

func (gui *ImGui) drawList(list imgui.DrawList, indexType uint32, indexSize, fbHeight int) {
	vertices, verticesSize := list.VertexBuffer()
	gui.vbo.Grow(verticesSize)
	gui.vbo.WriteRange(0, verticesSize, vertices)

	indices, indicesSize := list.IndexBuffer()
	gui.ebo.Grow(indicesSize)
	gui.ebo.WriteRange(0, indicesSize, indices)

	for _, cmd := range list.Commands() {
		if cmd.HasUserCallback() {
			cmd.CallUserCallback(list)
			continue
		}
		libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
		// clip rects are top down, scissor boxes bottom up
		clip := cmd.ClipRect()
		y := max(fbHeight-int(clip.W), 0)
		libgl.State.Scissor(int(clip.X), y, int(clip.Z-clip.X), int(clip.W-clip.Y))
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType,
			uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
	}
}

func imguiIndexType() (uint32, int) {
	switch size := imgui.IndexBufferLayout(); size {
	case 1:
		return gl.UNSIGNED_BYTE, size
	case 2:
		return gl.UNSIGNED_SHORT, size
	default:
		return gl.UNSIGNED_INT, size
	}
}

func (gui *ImGui) Delete() {
	gui.atlas.Delete()
	gui.vao.Delete()
	gui.ebo.Delete()
	gui.vbo.Delete()
}

// Destroy releases the imgui context. GPU resources are released separately by Delete.
func (gui *ImGui) Destroy() {
	gui.context.Destroy()
}
