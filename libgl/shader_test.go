package libgl

import (
	"testing"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brokenSource = `#version 450 core
//meta:name broken

void main() { this does not compile }
`

func TestUnlinkedShaderIgnoresUniforms(t *testing.T) {
	sh, err := NewShader(brokenSource, gl.FRAGMENT_SHADER)
	require.NoError(t, err)
	assert.Equal(t, "broken", sh.Name())
	assert.Zero(t, sh.Id())

	assert.Equal(t, int32(-1), sh.GetUniformLocation("u_color"))
	assert.Equal(t, int32(-1), sh.GetUniformLocation("u_color"))
	assert.NotPanics(t, func() {
		sh.SetUniform("u_color", mgl32.Vec4{1, 0, 0, 1})
		sh.SetUniform("u_near", float32(0.1))
	})
}

func TestPipelineCompleteness(t *testing.T) {
	unlinked, err := NewShader(brokenSource, gl.VERTEX_SHADER)
	require.NoError(t, err)
	linked := &program{glId: 7, uniformLocations: map[string]int32{}}

	assert.True(t, (&shaderPipeline{vertStage: linked, fragStage: linked}).Complete())
	assert.False(t, (&shaderPipeline{vertStage: unlinked, fragStage: linked}).Complete())
	assert.False(t, (&shaderPipeline{vertStage: linked, fragStage: unlinked}).Complete())
	assert.False(t, (&shaderPipeline{vertStage: linked}).Complete())
}
