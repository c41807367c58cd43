package main

import (
	_ "embed"

	"depth-precision/render"
)

//go:embed assets/shaders/object.vert
var Res_ObjectVshSrc string

//go:embed assets/shaders/object.frag
var Res_ObjectFshSrc string

//go:embed assets/shaders/screen.vert
var Res_ScreenVshSrc string

//go:embed assets/shaders/screen.frag
var Res_ScreenFshSrc string

//go:embed assets/shaders/depth.frag
var Res_DepthFshSrc string

//go:embed assets/shaders/imgui.vert
var Res_ImguiVshSrc string

//go:embed assets/shaders/imgui.frag
var Res_ImguiFshSrc string

func shaderSources() render.Sources {
	return render.Sources{
		ObjectVert: Res_ObjectVshSrc,
		ObjectFrag: Res_ObjectFshSrc,
		ScreenVert: Res_ScreenVshSrc,
		ScreenFrag: Res_ScreenFshSrc,
		DepthFrag:  Res_DepthFshSrc,
	}
}
