// Package app wires the window, GPU resources and scene together and runs
// the frame loop.
package app

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/witchhut/internal/config"
	"github.com/Faultbox/witchhut/internal/controls"
	"github.com/Faultbox/witchhut/internal/engine/animation"
	"github.com/Faultbox/witchhut/internal/engine/audio"
	"github.com/Faultbox/witchhut/internal/engine/camera"
	"github.com/Faultbox/witchhut/internal/engine/input"
	"github.com/Faultbox/witchhut/internal/engine/lighting"
	"github.com/Faultbox/witchhut/internal/engine/mesh"
	"github.com/Faultbox/witchhut/internal/engine/renderer"
	"github.com/Faultbox/witchhut/internal/engine/screenshot"
	"github.com/Faultbox/witchhut/internal/engine/shader"
	"github.com/Faultbox/witchhut/internal/engine/shaders"
	"github.com/Faultbox/witchhut/internal/engine/shadow"
	"github.com/Faultbox/witchhut/internal/engine/skybox"
	"github.com/Faultbox/witchhut/internal/engine/window"
	"github.com/Faultbox/witchhut/internal/logger"
	"github.com/Faultbox/witchhut/internal/render"
	"github.com/Faultbox/witchhut/internal/scene"
)

const (
	title    = "Witch Hut"
	quadPath = "models/quad/quad.obj"
)

// App is the running renderer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager

	programs  []*shader.Program
	shadowMap *shadow.Map
	textures  *mesh.TextureCache
	models    []*mesh.Model
	sky       *skybox.Skybox

	rig        *camera.Rig
	anim       *animation.State
	controller *controls.Controller
	scene      *scene.Registry
	pipeline   *render.Pipeline

	shots      *screenshot.Writer
	projection mgl32.Mat4
	frame      render.Frame
}

// New opens the window and loads every GPU resource. On error everything
// created so far is released.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Named("app")}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	cfg := a.cfg
	a.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Scene.AssetDir),
	)

	// Window first: it creates the GL context everything else needs.
	var err error
	a.window, err = window.New(window.Config{
		Title:       title,
		Width:       int32(cfg.Graphics.Width),
		Height:      int32(cfg.Graphics.Height),
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		MSAASamples: cfg.Graphics.MSAASamples,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := a.loadGPU(); err != nil {
		return err
	}
	a.renderer.CheckErrors("setup")

	a.input = input.New(a.window)
	a.shots = screenshot.New(cfg.Graphics.ScreenshotDir, "witchhut")
	a.setupScene(width, height)
	a.startAudio()

	a.log.Info("initialized",
		zap.Int("objects", len(a.scene.Objects())),
		zap.Int("textures", a.textures.Len()),
	)
	return nil
}

func (a *App) loadGPU() error {
	var shaderFS fs.FS = shaders.FS
	if dir := a.cfg.Scene.ShaderDir; dir != "" {
		shaderFS = os.DirFS(a.cfg.AssetPath(dir))
	}
	load := func(name, vert, frag string) (*shader.Program, error) {
		p, err := shader.Load(shaderFS, name, vert, frag)
		if err != nil {
			return nil, err
		}
		a.programs = append(a.programs, p)
		return p, nil
	}

	sceneProg, err := load("scene", shaders.SceneVert, shaders.SceneFrag)
	if err != nil {
		return err
	}
	depthProg, err := load("depth", shaders.DepthVert, shaders.DepthFrag)
	if err != nil {
		return err
	}
	glowProg, err := load("glow", shaders.GlowVert, shaders.GlowFrag)
	if err != nil {
		return err
	}
	quadProg, err := load("quad", shaders.QuadVert, shaders.QuadFrag)
	if err != nil {
		return err
	}
	skyProg, err := load("skybox", shaders.SkyboxVert, shaders.SkyboxFrag)
	if err != nil {
		return err
	}

	a.shadowMap, err = shadow.NewMap(a.cfg.Graphics.ShadowResolution)
	if err != nil {
		return fmt.Errorf("shadow map: %w", err)
	}

	a.textures = mesh.NewTextureCache()
	a.scene, err = scene.Cottage()
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	for _, o := range a.scene.Objects() {
		m, err := a.loadModel(o.MeshPath)
		if err != nil {
			return fmt.Errorf("scene object %s: %w", o.ID, err)
		}
		if err := a.scene.Attach(o.ID, m); err != nil {
			return err
		}
	}
	if err := a.scene.Validate(); err != nil {
		return err
	}

	quad, err := a.loadModel(quadPath)
	if err != nil {
		return fmt.Errorf("depth quad: %w", err)
	}

	faces := make([]string, len(a.cfg.Scene.Skybox))
	for i, f := range a.cfg.Scene.Skybox {
		faces[i] = a.cfg.AssetPath(f)
	}
	a.sky, err = skybox.Load(faces)
	if err != nil {
		return fmt.Errorf("skybox: %w", err)
	}

	a.pipeline = &render.Pipeline{
		Shadow: &render.ShadowPass{Target: a.shadowMap, Program: depthProg},
		Main: &render.MainPass{
			Device:    a.renderer,
			Shadow:    a.shadowMap,
			Scene:     sceneProg,
			Glow:      glowProg,
			Sky:       skyProg,
			DepthView: quadProg,
			Skybox:    a.sky,
			Quad:      quad,
		},
	}
	return nil
}

func (a *App) loadModel(rel string) (*mesh.Model, error) {
	m, err := mesh.Load(a.cfg.AssetPath(rel), a.textures)
	if err != nil {
		return nil, err
	}
	a.models = append(a.models, m)
	return m, nil
}

func (a *App) setupScene(width, height int32) {
	cc := a.cfg.Camera
	a.rig = camera.New(mgl32.Vec3(cc.Position), mgl32.Vec3(cc.Target), mgl32.Vec3(cc.WorldUp))
	a.anim = animation.NewState()
	a.controller = controls.New(a.rig, a.anim, controls.Settings{
		MoveSpeed:        cc.MoveSpeed,
		MouseSensitivity: cc.MouseSensitivity,
		InitialYaw:       cc.InitialYaw,
		InitialPitch:     cc.InitialPitch,
		PitchLimit:       cc.PitchLimit,
	})
	a.projection = camera.Projection(cc.FOVDegrees, width, height, cc.Near, cc.Far)

	a.frame = render.Frame{
		Width:       width,
		Height:      height,
		Sun:         lighting.Moon(),
		PointLights: lighting.CottageLights(),
		GlowColor:   lighting.GlowColor,
	}
}

// startAudio begins the background loop. Audio is optional: failures are
// logged and the scene runs silent.
func (a *App) startAudio() {
	ac := a.cfg.Audio
	if ac.Muted || ac.Background == "" {
		return
	}
	m := audio.New()
	if err := m.Init(); err != nil {
		a.log.Warn("audio disabled", zap.Error(err))
		return
	}
	m.SetMasterVolume(ac.MasterVolume)
	if err := m.PlayLooping(a.cfg.AssetPath(ac.Background)); err != nil {
		a.log.Warn("background track not playing", zap.Error(err))
		m.Close()
		return
	}
	a.audio = m
}

// Run drives the frame loop until the window is closed or Escape is pressed.
func (a *App) Run() error {
	clock := animation.NewClock(time.Now(), a.cfg.Frame.MaxDT)
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for {
		dt := clock.Tick(time.Now())

		for _, e := range a.input.Poll() {
			a.controller.Handle(e)
		}
		if a.controller.Quit() {
			break
		}
		a.applyControls()

		a.controller.Update()
		a.anim.Advance(dt, a.controller.CatHeld())

		a.buildFrame()
		a.pipeline.Render(&a.frame)
		if a.controller.TakeScreenshot() {
			a.saveScreenshot()
		}
		a.window.SwapBuffers()

		a.renderer.CheckErrors("frame")

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("dt_ms", dt*1000),
				zap.Stringer("pass", a.frame.Pass),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("frame loop finished")
	return nil
}

// applyControls pushes one-shot controller requests to the window and GL.
func (a *App) applyControls() {
	if captured, ok := a.controller.TakeCapture(); ok {
		a.window.SetMouseCaptured(captured)
	}
	if mode, ok := a.controller.TakeRaster(); ok {
		a.renderer.SetRaster(mode)
	}
	if w, h, ok := a.controller.TakeResize(); ok && a.renderer.Resize(w, h) {
		cc := a.cfg.Camera
		a.projection = camera.Projection(cc.FOVDegrees, w, h, cc.Near, cc.Far)
		a.frame.Width, a.frame.Height = w, h
	}
}

// saveScreenshot reads back the frame just rendered. Failures are logged only.
func (a *App) saveScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.SaveBottomUp(pixels, int(w), int(h))
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) buildFrame() {
	f := &a.frame
	f.View = a.rig.ViewMatrix()
	f.Projection = a.projection
	f.LightSpace = f.Sun.LightSpace()
	f.Pass = a.controller.Pass()
	f.Opaque, f.Glow = a.scene.Items(a.anim)
}

// Close releases every resource. It is safe on a partially built App.
func (a *App) Close() {
	a.log.Info("closing")

	if a.audio != nil {
		a.audio.Close()
	}
	if a.sky != nil {
		a.sky.Delete()
	}
	for _, m := range a.models {
		m.Delete()
	}
	if a.textures != nil {
		a.textures.Delete()
	}
	if a.shadowMap != nil {
		a.shadowMap.Destroy()
	}
	for _, p := range a.programs {
		p.Delete()
	}
	if a.window != nil {
		a.window.Close()
	}
}
