package glhf

import (
	"github.com/go-gl/gl/v3.3-core/gl"
)

// PushOverlay switches to the render state used for screen-space overlays: straight alpha
// blending on, depth testing off. The returned function restores whatever was set before.
func PushOverlay() func() {
	blendWasOn := gl.IsEnabled(gl.BLEND)
	depthWasOn := gl.IsEnabled(gl.DEPTH_TEST)

	var srcRGB, dstRGB, srcAlpha, dstAlpha int32
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &srcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &dstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &srcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &dstAlpha)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	return func() {
		gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
		setEnabled(gl.BLEND, blendWasOn)
		setEnabled(gl.DEPTH_TEST, depthWasOn)
	}
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// CheckError returns the pending OpenGL error code, or gl.NO_ERROR.
func CheckError() uint32 {
	return gl.GetError()
}
