package engine

import "fmt"

type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
	DepthEqual
	DepthAlways
)

func (d DepthFunc) String() string {
	switch d {
	case DepthLess:
		return "less"
	case DepthLessEqual:
		return "lequal"
	case DepthEqual:
		return "equal"
	case DepthAlways:
		return "always"
	}
	return fmt.Sprintf("DepthFunc(%d)", int(d))
}

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

func (b BlendFactor) String() string {
	switch b {
	case BlendZero:
		return "zero"
	case BlendOne:
		return "one"
	case BlendSrcAlpha:
		return "src_alpha"
	case BlendOneMinusSrcAlpha:
		return "one_minus_src_alpha"
	}
	return fmt.Sprintf("BlendFactor(%d)", int(b))
}

// RasterState is the fixed function state a draw call depends on.
// It is comparable, devices skip redundant state changes.
type RasterState struct {
	DepthTest bool
	DepthFunc DepthFunc

	Blend    bool
	BlendSrc BlendFactor
	BlendDst BlendFactor

	CullFace bool
}

var (
	// OpaquePass resolves occlusion, used for the first light.
	OpaquePass = RasterState{
		DepthTest: true,
		DepthFunc: DepthLess,
		BlendSrc:  BlendOne,
		BlendDst:  BlendZero,
	}

	// AccumulatePass adds a light contribution on top of the depth
	// written by the opaque pass.
	AccumulatePass = RasterState{
		DepthTest: true,
		DepthFunc: DepthEqual,
		Blend:     true,
		BlendSrc:  BlendOne,
		BlendDst:  BlendOne,
	}
)

func (s RasterState) String() string {
	return fmt.Sprintf("depth(%v, %v) blend(%v, %v, %v) cull(%v)",
		s.DepthTest, s.DepthFunc, s.Blend, s.BlendSrc, s.BlendDst, s.CullFace)
}
