// Package display renders the framebuffer through OpenGL.
//
// All methods must be called from the thread which owns the GL context.
package display

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices"
	"github.com/hexaflex/c8vm/framebuffer"
)

// Device defines all internal doodads for the display.
type Device struct {
	foreground  Color
	background  Color
	shader      uint32
	vao         uint32
	vbo         uint32
	screenTex   uint32
	digest      uint64 // Digest of the last uploaded framebuffer.
	uploaded    bool   // Has anything been uploaded since startup?
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device which draws lit pixels in fg and unlit pixels in bg.
func New(fg, bg Color) *Device {
	return &Device{
		foreground: fg,
		background: bg,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0002)
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.screenTex = makeTexture()
	d.uploaded = false
	d.initialized = true
	d.setColors()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.screenTex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// SetColors changes the foreground and background colors.
func (d *Device) SetColors(fg, bg Color) {
	d.foreground = fg
	d.background = bg

	if d.initialized {
		d.setColors()
	}
}

// Update uploads the framebuffer contents if they changed since the last call.
func (d *Device) Update(fb *framebuffer.Framebuffer) {
	if !d.initialized {
		return
	}

	sum := fb.Digest()
	if d.uploaded && sum == d.digest {
		return
	}

	uploadTexture(d.screenTex, framebuffer.Width, framebuffer.Height, fb.Pixels())
	d.digest = sum
	d.uploaded = true
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.screenTex)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (d *Device) setColors() {
	gl.UseProgram(d.shader)
	fg := gl.GetUniformLocation(d.shader, glStr("foreground"))
	bg := gl.GetUniformLocation(d.shader, glStr("background"))
	gl.Uniform3fv(fg, 1, &d.foreground[0])
	gl.Uniform3fv(bg, 1, &d.background[0])
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
