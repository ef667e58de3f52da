// Package lighting describes the scene lights and the light-space transform
// used for shadow mapping.
package lighting

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PointLightCount is the size of the point light arrays in the main shader.
const PointLightCount = 7

// PointLight is a point light source in world space.
type PointLight struct {
	Name     string
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

var (
	candleColor = mgl32.Vec3{0.5, 0.4, 0.1}
	houseColor  = mgl32.Vec3{0.1, 0.1, 0.5}
)

// GlowColor is the emissive color of the lamp and candle flame meshes.
// Components above 1 saturate under additive blending.
var GlowColor = mgl32.Vec3{2.55, 1.99, 0.61}

// CottageLights returns the seven point lights of the cottage scene in
// shader index order.
func CottageLights() [PointLightCount]PointLight {
	return [PointLightCount]PointLight{
		{Name: "candle1", Position: mgl32.Vec3{0.633715, 0.178798, -3.02519}, Color: candleColor},
		{Name: "candle2", Position: mgl32.Vec3{0.636248, 0.113232, -3.00641}, Color: candleColor},
		{Name: "candle3", Position: mgl32.Vec3{0.044475, 0.391092, -1.6515}, Color: candleColor},
		{Name: "house", Position: mgl32.Vec3{1.45561, 0.340656, -1.99858}, Color: houseColor},
		{Name: "pole1", Position: mgl32.Vec3{0.620615, 0.297354, 0.01794}, Color: candleColor},
		{Name: "pole2", Position: mgl32.Vec3{1.08481, 0.230449, 1.26476}, Color: candleColor},
		{Name: "pole3", Position: mgl32.Vec3{-2.15379, 0.259114, 0.928646}, Color: candleColor},
	}
}

// Uniform names of the point light arrays, built once.
var (
	PositionUniforms [PointLightCount]string
	ColorUniforms    [PointLightCount]string
)

func init() {
	for i := 0; i < PointLightCount; i++ {
		PositionUniforms[i] = fmt.Sprintf("pointLightPositions[%d]", i)
		ColorUniforms[i] = fmt.Sprintf("pointLightColors[%d]", i)
	}
}
