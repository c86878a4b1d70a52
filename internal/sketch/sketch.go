// Package sketch composes the tube scene: a subdivided plane wrapped into a
// tube by a patched Phong material, two lights, an orbit camera and an
// optional wireframe overlay.
package sketch

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/config"
	"github.com/Faultbox/tubescene/internal/engine/camera"
	"github.com/Faultbox/tubescene/internal/engine/displace"
	"github.com/Faultbox/tubescene/internal/engine/geometry"
	"github.com/Faultbox/tubescene/internal/engine/heightfield"
	"github.com/Faultbox/tubescene/internal/engine/lighting"
	"github.com/Faultbox/tubescene/internal/engine/loop"
	"github.com/Faultbox/tubescene/internal/engine/material"
	"github.com/Faultbox/tubescene/internal/engine/mesh"
	"github.com/Faultbox/tubescene/internal/engine/texture"
	"github.com/Faultbox/tubescene/internal/logger"
	"github.com/Faultbox/tubescene/pkg/math"
)

// Sketch is the tube scene. All methods run on the render thread.
type Sketch struct {
	Settings Settings

	imageAspect float32

	plane *geometry.Mesh
	field *heightfield.Field

	diffuse      *texture.Texture
	normal       *texture.Texture
	displacement *texture.FloatTexture

	tube    *material.Phong
	overlay *material.ShaderMaterial
	gpuMesh *mesh.Mesh

	camera *camera.OrbitCamera
	lights lighting.Rig

	width, height int
	resolution    [4]float32
	clock         float32

	log *zap.Logger
}

// New builds the scene and uploads it. Requires a current GL context.
func New(cfg *config.Config, loaded *Loaded) (*Sketch, error) {
	s, err := build(cfg, loaded)
	if err != nil {
		return nil, err
	}
	if err := s.upload(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// build assembles everything that does not touch GL.
func build(cfg *config.Config, loaded *Loaded) (*Sketch, error) {
	plane, err := geometry.NewPlane(cfg.Scene.PlaneSize, cfg.Scene.PlaneSize, cfg.Scene.Segments, cfg.Scene.Segments)
	if err != nil {
		return nil, fmt.Errorf("building plane: %w", err)
	}

	s := &Sketch{
		Settings: Settings{
			X:         cfg.Controls.X,
			Y:         cfg.Controls.Y,
			Progress:  cfg.Controls.Progress,
			Wireframe: cfg.Scene.Wireframe,
		},
		imageAspect:  cfg.Scene.ImageAspect,
		plane:        plane,
		field:        loaded.HeightField,
		diffuse:      texture.New(loaded.Diffuse),
		normal:       texture.New(loaded.NormalMap),
		displacement: &texture.FloatTexture{},
		camera:       camera.NewOrbitCamera(cfg.Scene.FOV, cfg.Scene.Near, cfg.Scene.Far, cfg.Scene.CameraZ),
		lights:       lighting.DefaultRig(),
		log:          logger.Named("sketch"),
	}

	s.tube = material.NewPhong()
	s.tube.Name = "tube"
	s.tube.Map = s.diffuse
	s.tube.NormalMap = s.normal
	s.tube.DisplacementMap = s.displacement
	s.tube.Side = material.DoubleSide
	s.tube.Transparent = true
	s.tube.OnBeforeCompile = s.patchTube

	s.overlay = newOverlay(material.UnitDisplacementMap)

	s.Resize(cfg.Graphics.Width, cfg.Graphics.Height)
	return s, nil
}

// patchTube is the tube material's compile hook: it adds the displacement
// uniforms, splices the tube code into the Phong program and keeps the
// uniform handles on the material for Update.
func (s *Sketch) patchTube(sh *material.Shader) error {
	u := &DisplacementUniforms{
		Translate: material.Vec2(math.Vec2{}),
		Progress:  material.Float(0),
	}
	sh.Uniforms[displace.UniformTranslate] = u.Translate
	sh.Uniforms[displace.UniformProgress] = u.Progress

	if err := sh.Patch(displace.Injections()...); err != nil {
		return err
	}
	s.tube.UserData = u
	return nil
}

// upload sends textures and the mesh to the GPU and compiles both programs.
func (s *Sketch) upload() error {
	s.diffuse.Upload()
	s.normal.Upload()
	s.displacement.UploadFloat(s.field.Width, s.field.Height, s.field.Samples)

	var err error
	s.gpuMesh, err = mesh.Upload(s.plane)
	if err != nil {
		return fmt.Errorf("uploading plane: %w", err)
	}
	if err := s.tube.Compile(); err != nil {
		return fmt.Errorf("compiling tube material: %w", err)
	}
	if err := s.overlay.Compile(); err != nil {
		return fmt.Errorf("compiling overlay material: %w", err)
	}

	s.log.Info("scene ready",
		zap.Int("vertices", s.plane.VertexCount()),
		zap.Int("indices", len(s.plane.Indices)),
	)
	return nil
}

// Uniforms returns the displacement handles, or nil before the tube
// material has been compiled.
func (s *Sketch) Uniforms() *DisplacementUniforms {
	u, _ := s.tube.UserData.(*DisplacementUniforms)
	return u
}

// Update applies the settings for one tick.
func (s *Sketch) Update(f loop.Frame) {
	s.clock = f.Clock

	if u := s.Uniforms(); u != nil {
		s.diffuse.Offset = math.Vec2{X: s.Settings.X, Y: s.Settings.Y}
		u.Translate.SetVec2(math.Vec2{X: s.Settings.X, Y: s.Settings.Y})
		u.Progress.SetFloat(s.Settings.Progress)
	}

	s.overlay.Uniforms["time"].SetFloat(s.clock)
	s.overlay.Uniforms["resolution"].SetVec4(s.resolution[0], s.resolution[1], s.resolution[2], s.resolution[3])
}

// Draw renders the tube, then the overlay when enabled.
func (s *Sketch) Draw() {
	view := s.camera.ViewMatrix()
	proj := s.camera.ProjectionMatrix()
	model := math.Identity()

	if us := s.tube.Uniforms(); us != nil {
		material.SetTransforms(us, model, view, proj)
		material.SetLights(us, s.lights, view)
		s.tube.Use()
		s.gpuMesh.Draw()
		s.tube.End()
	}

	if s.Settings.Wireframe {
		if us := s.overlay.Base.Uniforms(); us != nil {
			material.SetTransforms(us, model, view, proj)
			s.displacement.Bind(uint32(material.UnitDisplacementMap))
			gl.Enable(gl.POLYGON_OFFSET_LINE)
			gl.PolygonOffset(-1, -1)
			s.overlay.Use()
			s.gpuMesh.Draw()
			s.overlay.End()
			gl.Disable(gl.POLYGON_OFFSET_LINE)
		}
	}
}

// Resize updates the camera aspect and the resolution uniform. The caller
// sets the GL viewport.
func (s *Sketch) Resize(width, height int) {
	s.width, s.height, s.resolution = Resolution(width, height, s.imageAspect)
	s.camera.SetAspect(float32(s.width) / float32(s.height))
}

// ReloadHeightField swaps the displacement data. Requires a current GL
// context.
func (s *Sketch) ReloadHeightField(field *heightfield.Field) {
	s.field = field
	s.displacement.UploadFloat(field.Width, field.Height, field.Samples)
	lo, hi := field.Range()
	s.log.Info("height field reloaded",
		zap.Int("width", field.Width),
		zap.Int("height", field.Height),
		zap.Float32("min", lo),
		zap.Float32("max", hi),
	)
}

// FitCamera frames the displaced tube.
func (s *Sketch) FitCamera() {
	lo, hi := displace.Bounds(s.plane.Positions(), s.field)
	s.camera.FitToBounds(lo, hi)
}

// Camera returns the orbit camera.
func (s *Sketch) Camera() *camera.OrbitCamera {
	return s.camera
}

// Resolution returns the current resolution uniform value.
func (s *Sketch) Resolution() [4]float32 {
	return s.resolution
}

// Close releases GPU resources.
func (s *Sketch) Close() {
	if s.gpuMesh != nil {
		s.gpuMesh.Delete()
	}
	s.tube.Delete()
	s.overlay.Delete()
	s.diffuse.Delete()
	s.normal.Delete()
	s.displacement.Delete()
}
