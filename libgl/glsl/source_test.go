package glsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depthSource = `#version 450 core
//meta:name depth_visualize

// #define REVERSED_Z
#define SAMPLES 1

void main() {}
`

func TestParseName(t *testing.T) {
	tmpl, err := Parse(depthSource)
	require.NoError(t, err)
	assert.Equal(t, "depth_visualize", tmpl.Name)
}

func TestParseWithoutVersion(t *testing.T) {
	_, err := Parse("void main() {}\n")
	assert.True(t, errors.Is(err, ErrNoVersion))
}

func TestExpandDefaults(t *testing.T) {
	tmpl, err := Parse(depthSource)
	require.NoError(t, err)

	src := tmpl.Expand(nil)
	assert.Contains(t, src, "// #define REVERSED_Z")
	assert.Contains(t, src, "#define SAMPLES 1")
	assert.NotContains(t, src, "$def_")
	assert.True(t, strings.HasPrefix(src, "#version 450 core"))
}

func TestExpandOverrides(t *testing.T) {
	tmpl, err := Parse(depthSource)
	require.NoError(t, err)

	src := tmpl.Expand(map[string]string{"reversed_z": "true", "SAMPLES": "4"})
	assert.Contains(t, src, "\n#define REVERSED_Z\n")
	assert.NotContains(t, src, "// #define REVERSED_Z")
	assert.Contains(t, src, "#define SAMPLES 4")

	// the template itself is left untouched
	assert.Contains(t, tmpl.Expand(nil), "// #define REVERSED_Z")
}

func TestExpandUnknownDefineGoesAfterVersion(t *testing.T) {
	tmpl, err := Parse(depthSource)
	require.NoError(t, err)

	src := tmpl.Expand(map[string]string{"EXTRA": "2"})
	assert.True(t, strings.HasPrefix(src, "#version 450 core\n#define EXTRA 2\n"), src)
}
