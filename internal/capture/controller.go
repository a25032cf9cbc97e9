// Package capture drives the per-frame capture sequence: randomize the
// scene, settle and snapshot the appearance pass, swap in mask materials,
// settle and snapshot the mask pass, restore, and persist the frame's
// metadata record.
package capture

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/synthcap/internal/config"
	"github.com/Faultbox/synthcap/internal/mask"
	"github.com/Faultbox/synthcap/internal/meta"
	"github.com/Faultbox/synthcap/internal/persist"
	"github.com/Faultbox/synthcap/internal/randomize"
	"github.com/Faultbox/synthcap/internal/sampler"
	"github.com/Faultbox/synthcap/internal/scene"
)

// Controller is the run's state machine. Frames are strictly sequential:
// frame N+1's randomization never begins before frame N's metadata write
// completes, because both mutate the shared live scene state.
type Controller struct {
	cfg    *config.Config
	world  *scene.World
	view   scene.Viewport
	mats   scene.MaterialSystem
	store  persist.Store
	reg    *mask.Registry
	rnd    *randomize.Randomizer
	smp    *sampler.Sampler
	writer *meta.Writer
	log    *zap.Logger

	state State
	frame int
}

// NewController prepares a run: discovers nothing itself (the world comes
// from scene.Discover), assigns mask colors in discovery order, creates the
// output directories, and sets the viewport size. log may be nil.
func NewController(cfg *config.Config, world *scene.World, view scene.Viewport, mats scene.MaterialSystem, store persist.Store, log *zap.Logger) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}

	reg := mask.NewRegistry()
	reg.Assign(world.Objects)

	for _, sub := range []string{"rgb", "mask", "meta"} {
		if err := store.EnsureDir(filepath.Join(cfg.Output.Dir, sub)); err != nil {
			return nil, err
		}
	}

	view.SetOutputSize(cfg.Viewport.Width, cfg.Viewport.Height)

	return &Controller{
		cfg:    cfg,
		world:  world,
		view:   view,
		mats:   mats,
		store:  store,
		reg:    reg,
		rnd:    randomize.New(cfg),
		smp:    sampler.New(cfg.Run.Seed),
		writer: meta.NewWriter(store, cfg.Output.Dir),
		log:    log,
		state:  StateIdle,
	}, nil
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Frame returns the number of completed frames. It advances only after a
// frame's full triple (rgb, mask, metadata) has been persisted.
func (c *Controller) Frame() int {
	return c.frame
}

// Registry returns the run's mask color registry.
func (c *Controller) Registry() *mask.Registry {
	return c.reg
}

// Run produces the configured number of frames. Any capture or persistence
// failure is fatal: already-written frames stay valid and complete, the
// failed frame leaves no artifacts behind, and the error is returned.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info("capture run starting",
		zap.Uint64("seed", c.cfg.Run.Seed),
		zap.Int("frames", c.cfg.Run.Frames),
		zap.Int("objects", len(c.world.Trackables())),
	)

	for c.frame < c.cfg.Run.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.captureFrame(ctx); err != nil {
			return err
		}
		c.frame++
		c.log.Debug("frame complete", zap.Int("frame", c.frame-1))
	}

	c.state = StateDone
	c.log.Info("capture run complete", zap.Int("frames", c.frame))
	return nil
}

func (c *Controller) captureFrame(ctx context.Context) error {
	idx := c.frame

	c.state = StateRandomizing
	c.rnd.Randomize(c.world, c.smp)

	// The renderer needs one full composition cycle before a snapshot
	// reflects the new transforms.
	c.state = StateSettlingRGB
	if err := c.view.AwaitCompositionCycle(ctx); err != nil {
		return &CaptureError{Frame: idx, Pass: "rgb", Err: err}
	}

	c.state = StateCapturingRGB
	rgbPixels, err := c.view.Snapshot()
	if err != nil {
		return &CaptureError{Frame: idx, Pass: "rgb", Err: err}
	}

	maskPixels, err := c.captureMaskPass(ctx, idx)
	if err != nil {
		return err
	}

	c.state = StateWritingMetadata
	return c.writeTriple(idx, rgbPixels, maskPixels)
}

// captureMaskPass runs the segmentation pass under a scoped material
// acquisition: overrides are saved before the swap and restored on every
// exit path, so a failed mask capture cannot leak mask-colored materials
// into later frames.
func (c *Controller) captureMaskPass(ctx context.Context, idx int) ([]byte, error) {
	c.state = StateApplyingMaskMaterials
	restore := c.applyMaskMaterials()
	defer func() {
		c.state = StateRestoringMaterials
		restore()
	}()

	c.state = StateSettlingMask
	if err := c.view.AwaitCompositionCycle(ctx); err != nil {
		return nil, &CaptureError{Frame: idx, Pass: "mask", Err: err}
	}

	c.state = StateCapturingMask
	pixels, err := c.view.Snapshot()
	if err != nil {
		return nil, &CaptureError{Frame: idx, Pass: "mask", Err: err}
	}
	return pixels, nil
}

// applyMaskMaterials saves every trackable's current override (which may be
// nil) and installs its flat unlit mask material. The returned restore
// function reapplies the saved overrides, nil as nil, and is safe to call
// exactly once.
func (c *Controller) applyMaskMaterials() func() {
	type savedOverride struct {
		obj *scene.Object
		mat *scene.Material
	}

	trackables := c.world.Trackables()
	saved := make([]savedOverride, 0, len(trackables))
	for _, o := range trackables {
		saved = append(saved, savedOverride{obj: o, mat: c.mats.Override(o)})

		color, _ := c.reg.Color(o.Name)
		c.mats.SetOverride(o, &scene.Material{Color: color, Unlit: true})
	}

	return func() {
		for _, s := range saved {
			c.mats.SetOverride(s.obj, s.mat)
		}
	}
}

// writeTriple encodes and persists the frame's rgb image, mask image, and
// metadata record, in that order. On any failure it removes whatever part
// of the triple was already written, so a failed frame leaves no orphans.
func (c *Controller) writeTriple(idx int, rgbPixels, maskPixels []byte) error {
	dir := c.cfg.Output.Dir
	ext := c.cfg.Output.ImageFormat
	w, h := c.cfg.Viewport.Width, c.cfg.Viewport.Height

	rgbPath := persist.ImagePath(dir, "rgb", idx, ext)
	maskPath := persist.ImagePath(dir, "mask", idx, ext)
	metaPath := persist.MetaPath(dir, idx)

	cleanup := func() {
		_ = c.store.Remove(rgbPath)
		_ = c.store.Remove(maskPath)
		_ = c.store.Remove(metaPath)
	}

	rgbData, err := persist.EncodePNG(rgbPixels, w, h)
	if err != nil {
		return &CaptureError{Frame: idx, Pass: "rgb", Err: err}
	}
	maskData, err := persist.EncodePNG(maskPixels, w, h)
	if err != nil {
		return &CaptureError{Frame: idx, Pass: "mask", Err: err}
	}

	if err := c.store.WriteBytes(rgbPath, rgbData); err != nil {
		cleanup()
		return err
	}
	if err := c.store.WriteBytes(maskPath, maskData); err != nil {
		cleanup()
		return err
	}

	// Artifact references are relative to the output directory so the
	// dataset stays portable.
	rec := meta.BuildRecord(idx, c.smp.Seed(),
		persist.ImagePath("", "rgb", idx, ext),
		persist.ImagePath("", "mask", idx, ext),
		c.world, c.reg)

	if err := c.writer.Write(rec); err != nil {
		cleanup()
		return err
	}
	return nil
}
