// Package glview is an OpenGL-backed capture viewport: a hidden SDL2
// window with an offscreen framebuffer whose pixels are read back for each
// snapshot. The actual scene drawing is supplied by the embedding engine
// through a draw callback; this package owns the GL render target and the
// composition/read-back sequencing.
package glview

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/synthcap/internal/scene"
)

var _ scene.Viewport = (*Viewport)(nil)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// DrawFunc renders the scene into the currently bound framebuffer.
type DrawFunc func(width, height int)

// ClearDraw returns a DrawFunc that clears the target to a flat color. It
// is the launcher's minimal callback; engine integrations replace it with
// their own scene drawing.
func ClearDraw(r, g, b uint8) DrawFunc {
	return func(width, height int) {
		gl.ClearColor(float32(r)/255, float32(g)/255, float32(b)/255, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}
}

// Viewport wraps the SDL2 window, GL context, and offscreen framebuffer.
type Viewport struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	draw      DrawFunc

	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	width        int32
	height       int32
	fbErr        error
}

// New creates a hidden window with an OpenGL 4.1 core context.
func New(title string, draw DrawFunc) (*Viewport, error) {
	v := &Viewport{draw: draw}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	var err error
	v.sdlWindow, err = sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		64, 64,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	v.glContext, err = v.sdlWindow.GLCreateContext()
	if err != nil {
		v.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	return v, nil
}

// SetOutputSize sizes the offscreen render target. The framebuffer is
// (re)created with an RGBA8 color texture and a 24-bit depth renderbuffer.
func (v *Viewport) SetOutputSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if int32(w) == v.width && int32(h) == v.height && v.fbo != 0 {
		return
	}

	v.destroyFramebuffer()
	v.width, v.height = int32(w), int32(h)

	gl.GenFramebuffers(1, &v.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, v.fbo)

	gl.GenTextures(1, &v.colorTexture)
	gl.BindTexture(gl.TEXTURE_2D, v.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, v.width, v.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, v.colorTexture, 0)

	gl.GenRenderbuffers(1, &v.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, v.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, v.width, v.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, v.depthRBO)

	v.fbErr = nil
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		v.fbErr = fmt.Errorf("glview: framebuffer incomplete: 0x%x", status)
		v.destroyFramebuffer()
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// AwaitCompositionCycle runs one full render into the offscreen target and
// waits for the GPU to finish, so the next snapshot is pixel-accurate.
func (v *Viewport) AwaitCompositionCycle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.fbErr != nil {
		return v.fbErr
	}
	if v.fbo == 0 {
		return fmt.Errorf("glview: output size not set")
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, v.fbo)
	gl.Viewport(0, 0, v.width, v.height)

	if v.draw != nil {
		v.draw(int(v.width), int(v.height))
	}

	gl.Finish()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	v.sdlWindow.GLSwap()

	return nil
}

// Snapshot reads the framebuffer color attachment. GL reads rows from the
// bottom-left, so rows are flipped to the top-left origin the persistence
// layer expects.
func (v *Viewport) Snapshot() ([]byte, error) {
	if v.fbErr != nil {
		return nil, v.fbErr
	}
	if v.fbo == 0 {
		return nil, fmt.Errorf("glview: output size not set")
	}

	raw := make([]byte, v.width*v.height*4)

	gl.BindFramebuffer(gl.FRAMEBUFFER, v.fbo)
	gl.ReadPixels(0, 0, v.width, v.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(raw))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		return nil, fmt.Errorf("glview: reading pixels: GL error 0x%x", glErr)
	}

	pixels := make([]byte, len(raw))
	rowSize := int(v.width) * 4
	for y := 0; y < int(v.height); y++ {
		srcY := int(v.height) - 1 - y
		copy(pixels[y*rowSize:(y+1)*rowSize], raw[srcY*rowSize:(srcY+1)*rowSize])
	}

	return pixels, nil
}

func (v *Viewport) destroyFramebuffer() {
	if v.fbo != 0 {
		gl.DeleteFramebuffers(1, &v.fbo)
		v.fbo = 0
	}
	if v.colorTexture != 0 {
		gl.DeleteTextures(1, &v.colorTexture)
		v.colorTexture = 0
	}
	if v.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &v.depthRBO)
		v.depthRBO = 0
	}
}

// Close releases the framebuffer, GL context, and window.
func (v *Viewport) Close() {
	v.destroyFramebuffer()
	if v.glContext != nil {
		sdl.GLDeleteContext(v.glContext)
	}
	if v.sdlWindow != nil {
		v.sdlWindow.Destroy()
	}
	sdl.Quit()
}
