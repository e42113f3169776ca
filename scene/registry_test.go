package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-antikeks/rtr/engine"
)

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry()
	r.SetLightCount(2)

	red, err := r.Add("red", NewPhongMaterial(nil))
	require.NoError(t, err)
	toon, err := r.Add("toon", NewToonMaterial(nil))
	require.NoError(t, err)

	assert.Equal(t, MaterialID(0), red)
	assert.Equal(t, MaterialID(1), toon)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "toon", r.Name(toon))
	assert.Equal(t, "", r.Name(9))

	m, err := r.Get(toon)
	require.NoError(t, err)
	assert.Len(t, m.Lights(), 2)

	id, err := r.Lookup("red")
	require.NoError(t, err)
	assert.Equal(t, red, id)

	_, err = r.Add("red", NewPhongMaterial(nil))
	assert.Error(t, err)
	_, err = r.Add("nil", nil)
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	_, err = r.Get(NoMaterial)
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	_, err = r.Lookup("goblin")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestRegistry_Lights(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("a", NewPhongMaterial(nil))
	require.NoError(t, err)
	_, err = r.Add("b", NewPointMaterial(nil))
	require.NoError(t, err)

	r.SetLightCount(3)
	r.Each(func(_ MaterialID, m Material) {
		assert.Len(t, m.Lights(), 3)
	})

	r.BeginFrame()
	for i := 0; i < 3; i++ {
		assert.False(t, r.LightReady(i))
	}

	require.NoError(t, r.UpdateLight(1, mgl32.Vec3{0, 1, 0}))
	assert.False(t, r.LightReady(0))
	assert.True(t, r.LightReady(1))
	assert.False(t, r.LightReady(3))

	r.Each(func(_ MaterialID, m Material) {
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Lights()[1].Position)
	})

	assert.ErrorIs(t, r.UpdateLight(3, mgl32.Vec3{}), ErrInvalidNode)

	// a new frame invalidates every slot
	r.BeginFrame()
	assert.False(t, r.LightReady(1))
}

func TestRegistry_SetTime(t *testing.T) {
	r := NewRegistry()
	a := NewPhongMaterial(nil)
	b := NewToonMaterial(nil)
	_, _ = r.Add("a", a)
	_, _ = r.Add("b", b)

	r.SetTime(2.5)
	assert.Equal(t, float32(2.5), a.Time())
	assert.Equal(t, float32(2.5), b.Time())
}

func TestRegistry_ReplaceProgram(t *testing.T) {
	oldPhong := newFakeProgram("phong", nil)
	toonPrg := newFakeProgram("toon", nil)

	r := NewRegistry()
	red := NewPhongMaterial(oldPhong)
	goblin := NewPhongMaterial(oldPhong)
	toon := NewToonMaterial(toonPrg)
	_, _ = r.Add("red", red)
	_, _ = r.Add("goblin", goblin)
	_, _ = r.Add("toon", toon)

	newPhong := newFakeProgram("phong", nil)
	old := r.ReplaceProgram("phong", newPhong)

	assert.Equal(t, []engine.Program{oldPhong}, old)
	assert.Same(t, newPhong, red.Program())
	assert.Same(t, newPhong, goblin.Program())
	assert.Same(t, toonPrg, toon.Program())
}
