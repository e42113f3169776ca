package scene

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-antikeks/rtr/engine"
)

type testScene struct {
	*SceneGraph
	device   *fakeDevice
	programs map[string]*fakeProgram

	red, goblin, toon, point MaterialID
	cube, sphere             NodeID
	light0                   NodeID
}

// newTestScene builds World -> Scene -> Cube, World -> Camera -> Light0
// with the light right above the camera.
func newTestScene(t *testing.T) *testScene {
	t.Helper()

	d := newFakeDevice()
	ts := &testScene{
		SceneGraph: New(d, DefaultOptions()),
		device:     d,
		programs:   make(map[string]*fakeProgram),
	}
	for _, name := range []string{"phong", "toon", "point"} {
		ts.programs[name] = newFakeProgram(name, d)
	}

	var err error
	ts.red, err = ts.AddMaterial("red", NewColoredMaterial(ts.programs["phong"], mgl32.Vec3{0.8, 0.1, 0.1}, 0.3, 80))
	require.NoError(t, err)
	ts.goblin, err = ts.AddMaterial("goblin", NewColoredMaterial(ts.programs["phong"], mgl32.Vec3{0.8, 0.6, 0.1}, 0.4, 90))
	require.NoError(t, err)
	ts.toon, err = ts.AddMaterial("toon", NewToonMaterial(ts.programs["toon"]))
	require.NoError(t, err)
	ts.point, err = ts.AddMaterial("point", NewPointMaterial(ts.programs["point"]))
	require.NoError(t, err)

	ts.cube, err = ts.AddModel("Cube", engine.NewCubeGeometry(4), ts.red, true)
	require.NoError(t, err)
	ts.sphere, err = ts.AddModel("Sphere", engine.NewSphereGeometry(3, 8, 6), ts.goblin, true)
	require.NoError(t, err)

	ts.light0, err = ts.AddLight("Light0", ts.Camera(), mgl32.Translate3D(0, 1, 0))
	require.NoError(t, err)

	require.NoError(t, ts.SetSceneNode("Cube"))
	return ts
}

func TestSceneGraph_Construction(t *testing.T) {
	ts := newTestScene(t)
	g := ts.Graph()

	assert.Equal(t, []NodeID{ts.Scene(), ts.Camera()}, g.Children(ts.World()))
	assert.Equal(t, []NodeID{ts.cube}, g.Children(ts.Scene()))
	assert.Equal(t, []NodeID{ts.light0}, g.Children(ts.Camera()))
	assert.Equal(t, []NodeID{ts.light0}, ts.Lights())
	assert.Equal(t, mgl32.Vec3{0.4, 0.4, 0.4}, ts.BackgroundColor())

	ts.Materials().Each(func(_ MaterialID, m Material) {
		assert.Len(t, m.Lights(), 1)
	})
}

func TestSceneGraph_LightFollowsCamera(t *testing.T) {
	ts := newTestScene(t)

	camToWorld := mgl32.HomogRotate3DY(mgl32.DegToRad(45)).Mul4(mgl32.Translate3D(0, 0, 3))
	require.NoError(t, ts.Graph().SetLocal(ts.Camera(), camToWorld))

	pos, err := ts.LightPositions()
	require.NoError(t, err)
	require.Len(t, pos, 1)

	want := camToWorld.Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	assert.True(t, pos[0].ApproxEqualThreshold(want, 1e-5), "got %v, want %v", pos[0], want)

	require.NoError(t, ts.Draw())
	ts.Materials().Each(func(_ MaterialID, m Material) {
		assert.True(t, m.Lights()[0].Position.ApproxEqualThreshold(want, 1e-5))
	})
}

func TestSceneGraph_SetSceneNode(t *testing.T) {
	ts := newTestScene(t)

	require.NoError(t, ts.SetSceneNode("Sphere"))
	assert.Equal(t, []NodeID{ts.sphere}, ts.Graph().Children(ts.Scene()))
	assert.Equal(t, NoNode, ts.Graph().Parent(ts.cube))
	assert.Equal(t, "Sphere", ts.CurrentSceneNode())

	err := ts.SetSceneNode("Teapot")
	assert.ErrorIs(t, err, ErrUnknownNode)
	assert.Equal(t, []NodeID{ts.sphere}, ts.Graph().Children(ts.Scene()))
	assert.Equal(t, "Sphere", ts.CurrentSceneNode())

	assert.ErrorIs(t, ts.SetSceneNode(WorldNode), ErrInvalidNode)
}

func TestSceneGraph_SetSceneNodeFixedRoles(t *testing.T) {
	ts := newTestScene(t)
	g := ts.Graph()

	for _, name := range []string{WorldNode, SceneNode, CameraNode, "Light0"} {
		err := ts.SetSceneNode(name)
		assert.ErrorIs(t, err, ErrInvalidNode, name)
		assert.Equal(t, []NodeID{ts.cube}, g.Children(ts.Scene()), name)
		assert.Equal(t, "Cube", ts.CurrentSceneNode(), name)
	}

	assert.Equal(t, []NodeID{ts.Scene(), ts.Camera()}, g.Children(ts.World()))
	assert.Equal(t, []NodeID{ts.light0}, g.Children(ts.Camera()))

	// a model carrying a light would take the light along when replaced
	_, err := ts.AddLight("Lamp", ts.sphere, mgl32.Translate3D(0, 2, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, ts.SetSceneNode("Sphere"), ErrInvalidNode)
	assert.Equal(t, []NodeID{ts.cube}, g.Children(ts.Scene()))

	// the camera survives switching models
	require.NoError(t, ts.SetSceneNode("Cube"))
	assert.Equal(t, ts.World(), g.Parent(ts.Camera()))
}

func TestSceneGraph_ZeroRedrawInterval(t *testing.T) {
	opts := DefaultOptions()
	opts.RedrawInterval = 0
	s := New(newFakeDevice(), opts)

	assert.NotPanics(t, func() { s.ToggleAnimation(true) })
	assert.True(t, s.Animating())
	s.ToggleAnimation(false)
}

func TestSceneGraph_RasterStatePerPass(t *testing.T) {
	ts := newTestScene(t)
	_, err := ts.AddLight("Light1", ts.World(), mgl32.Translate3D(0, 5, 0))
	require.NoError(t, err)
	_, err = ts.AddLight("Light2", ts.Scene(), mgl32.Translate3D(5, 0, 0))
	require.NoError(t, err)
	ts.device.reset()

	require.NoError(t, ts.Draw())

	require.Len(t, ts.device.clears, 1)
	assert.Equal(t, mgl32.Vec3{0.4, 0.4, 0.4}, ts.device.clears[0])

	require.Len(t, ts.device.draws, 3)
	for i, d := range ts.device.draws {
		assert.Equal(t, int32(i), d.pass)
		if i == 0 {
			assert.Equal(t, engine.OpaquePass, d.state)
			assert.Equal(t, engine.DepthLess, d.state.DepthFunc)
			assert.False(t, d.state.Blend)
			assert.False(t, d.state.CullFace)
			continue
		}
		assert.Equal(t, engine.DepthEqual, d.state.DepthFunc)
		assert.True(t, d.state.Blend)
		assert.Equal(t, engine.BlendOne, d.state.BlendSrc)
		assert.Equal(t, engine.BlendOne, d.state.BlendDst)
	}
}

func TestSceneGraph_LightArrays(t *testing.T) {
	ts := newTestScene(t)
	_, err := ts.AddLight("Light1", ts.World(), mgl32.Translate3D(0, 5, 0))
	require.NoError(t, err)
	require.NoError(t, ts.Graph().SetLocal(ts.Camera(), mgl32.Translate3D(0, 0, 3)))

	require.NoError(t, ts.Draw())

	// every pass sees its own light, written before any pass was drawn
	want := []mgl32.Vec3{{0, 1, 3}, {0, 5, 0}}
	for i, d := range ts.device.draws {
		assert.True(t, d.light.ApproxEqual(want[i]), "pass %d: %v", i, d.light)
	}
	ts.Materials().Each(func(id MaterialID, m Material) {
		for i, l := range m.Lights() {
			assert.Truef(t, l.Position.ApproxEqual(want[i]), "material %d light %d", id, i)
		}
	})

	// positions follow the latest frame
	require.NoError(t, ts.Graph().SetLocal(ts.Camera(), mgl32.Translate3D(2, 0, 0)))
	require.NoError(t, ts.Draw())
	ts.Materials().Each(func(_ MaterialID, m Material) {
		assert.True(t, m.Lights()[0].Position.ApproxEqual(mgl32.Vec3{2, 1, 0}))
	})
}

func TestSceneGraph_StaleLights(t *testing.T) {
	ts := newTestScene(t)
	ts.Materials().BeginFrame()

	err := ts.Graph().Draw(ts.World(), Camera{}, 0, ts.drawMesh)
	assert.ErrorIs(t, err, ErrLightsStale)
	assert.Empty(t, ts.device.draws)
}

func TestSceneGraph_NoLights(t *testing.T) {
	d := newFakeDevice()
	s := New(d, DefaultOptions())

	require.NoError(t, s.Draw())
	assert.Len(t, d.clears, 1)
	assert.Empty(t, d.draws)
}

func TestSceneGraph_ScaleToUnit(t *testing.T) {
	ts := newTestScene(t)

	tests := []struct {
		name string
		geo  *engine.Geometry
	}{
		{"cube", engine.NewCubeGeometry(4)},
		{"sphere", engine.NewSphereGeometry(0.25, 12, 8)},
		{"plane", engine.NewPlaneGeometry(10, 2)},
		{"torus", engine.NewTorusGeometry(3, 1, 8, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ts.CreateNode(NewMesh(tt.name, tt.geo, ts.red), true)
			b := tt.geo.Boundary().Transform(ts.Graph().Local(id))
			assert.InDelta(t, 1.0, b.MaxExtent(), 1e-5)

			raw := ts.CreateNode(NewMesh(tt.name, tt.geo, ts.red), false)
			assert.Equal(t, mgl32.Ident4(), ts.Graph().Local(raw))
		})
	}
}

func TestSceneGraph_ReplaceMaterialAndDrawScene(t *testing.T) {
	ts := newTestScene(t)
	ts.device.reset()

	cam := NewCamera(mgl32.Translate3D(0, 0, 5), mgl32.Perspective(1, 1, 0.1, 10))
	require.NoError(t, ts.ReplaceMaterialAndDrawScene(cam, ts.toon))

	for _, m := range ts.Meshes() {
		assert.Equal(t, ts.toon, m.Material)
	}
	require.Len(t, ts.device.draws, 1)
	assert.Equal(t, "toon", ts.device.draws[0].program)
	assert.Empty(t, ts.device.clears)

	// the caller's camera is used, not the Camera node
	prg := ts.programs["toon"]
	assert.Equal(t, cam.View, prg.uniforms["viewMatrix"])
	assert.Equal(t, cam.Projection, prg.uniforms["projectionMatrix"])

	// all meshes already use the material
	require.NoError(t, ts.ReplaceMaterialAndDrawScene(cam, ts.toon))
	assert.Len(t, ts.device.draws, 2)

	// one differing mesh triggers a full replacement
	ts.Graph().Mesh(ts.sphere).Material = ts.point
	require.NoError(t, ts.ReplaceMaterialAndDrawScene(cam, ts.toon))
	assert.Equal(t, ts.toon, ts.Graph().Mesh(ts.sphere).Material)

	assert.ErrorIs(t, ts.ReplaceMaterialAndDrawScene(cam, 17), ErrUnknownMaterial)
}

func TestSceneGraph_SelectShader(t *testing.T) {
	ts := newTestScene(t)
	tm, err := ts.Materials().Get(ts.toon)
	require.NoError(t, err)

	require.NoError(t, ts.SelectShader("Toon"))
	for _, m := range ts.Meshes() {
		assert.Equal(t, ts.toon, m.Material)
	}
	assert.True(t, tm.(*ToonMaterial).Toon)

	require.NoError(t, ts.SelectShader("phong"))
	for _, m := range ts.Meshes() {
		assert.Equal(t, ts.red, m.Material)
	}
	assert.False(t, tm.(*ToonMaterial).Toon)

	require.NoError(t, ts.SelectShader("goblin"))
	assert.Equal(t, ts.goblin, ts.Graph().Mesh(ts.cube).Material)

	assert.ErrorIs(t, ts.SelectShader("wireframe"), ErrUnknownMaterial)
	assert.Equal(t, ts.goblin, ts.Graph().Mesh(ts.cube).Material)
}

func TestSceneGraph_AnimationTime(t *testing.T) {
	ts := newTestScene(t)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.SetClock(func() time.Time { return now })

	require.NoError(t, ts.Draw())
	now = now.Add(1500 * time.Millisecond)
	require.NoError(t, ts.Draw())

	ts.Materials().Each(func(_ MaterialID, m Material) {
		assert.InDelta(t, 1.5, m.Base().Time(), 1e-6)
	})
	assert.InDelta(t, float32(1.5), ts.programs["phong"].uniforms["time"], 1e-6)

	assert.False(t, ts.Animating())
	assert.Nil(t, ts.Ticks())
	ts.ToggleAnimation(true)
	ts.ToggleAnimation(true)
	assert.True(t, ts.Animating())
	assert.NotNil(t, ts.Ticks())
	ts.ToggleAnimation(false)
	assert.False(t, ts.Animating())
}

func TestSceneGraph_Redraw(t *testing.T) {
	ts := newTestScene(t)
	assert.True(t, ts.NeedsRedraw())

	require.NoError(t, ts.Draw())
	assert.False(t, ts.NeedsRedraw())

	ts.SetBackgroundColor(mgl32.Vec3{1, 1, 1})
	assert.True(t, ts.NeedsRedraw())
	require.NoError(t, ts.Draw())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, ts.device.clears[len(ts.device.clears)-1])
}

func TestSceneGraph_ReloadProgram(t *testing.T) {
	ts := newTestScene(t)
	old := ts.programs["phong"]
	fresh := newFakeProgram("phong", ts.device)

	assert.Equal(t, 1, ts.ReloadProgram("phong", fresh))
	assert.True(t, old.deleted)

	ts.device.reset()
	require.NoError(t, ts.Draw())
	assert.Equal(t, 1, fresh.uses)
}

func TestSceneGraph_AddModelErrors(t *testing.T) {
	ts := newTestScene(t)

	_, err := ts.AddModel("Cube", engine.NewCubeGeometry(1), ts.red, true)
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = ts.AddModel("Box", engine.NewCubeGeometry(1), 42, true)
	assert.ErrorIs(t, err, ErrUnknownMaterial)

	_, err = ts.AddLight("Light0", ts.World(), mgl32.Ident4())
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = ts.AddLight("Light9", 1000, mgl32.Ident4())
	assert.ErrorIs(t, err, ErrInvalidNode)
}
