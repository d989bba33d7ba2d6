package util

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

func Get2DPixelCoordOrthographicProjectionMatrix(width, height int) mgl32.Mat4 {
	// we want 0,0 to be at the top left
	return mgl32.Ortho2D(0, float32(width), float32(height), 0)
}

func DoesFileExist(filename string) bool {
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return true
}
