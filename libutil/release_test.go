package libutil_test

import (
	"testing"

	"depth-precision/libutil"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Delete() {
	*r.log = append(*r.log, r.name)
}

func TestReleaseStackReverseOrder(t *testing.T) {
	var deleted []string
	rs := &libutil.ReleaseStack{}

	a := libutil.Own(rs, "shader", &recorder{name: "shader", log: &deleted})
	libutil.Own(rs, "texture", &recorder{name: "texture", log: &deleted})
	libutil.Own(rs, "framebuffer", &recorder{name: "framebuffer", log: &deleted})

	assert.Equal(t, "shader", a.name)
	assert.Equal(t, 3, rs.Len())
	assert.Equal(t, []string{"framebuffer", "texture", "shader"}, rs.Names())

	rs.Release()

	assert.Equal(t, []string{"framebuffer", "texture", "shader"}, deleted)
	assert.Equal(t, 0, rs.Len())

	rs.Release()
	assert.Len(t, deleted, 3)
}
