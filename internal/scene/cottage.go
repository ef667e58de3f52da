package scene

import (
	"github.com/Faultbox/witchhut/internal/engine/animation"
	"github.com/go-gl/mathgl/mgl32"
)

// Cottage object ids.
const (
	MainScene ObjectID = "main_scene"
	Ground    ObjectID = "ground"
	Broom     ObjectID = "broom"
	Teapot    ObjectID = "teapot"
	Spoon     ObjectID = "spoon"
	Cat       ObjectID = "cat"
	BigGrass  ObjectID = "big_grass"

	HouseLight ObjectID = "house_light"
	LightPole1 ObjectID = "light_pole1"
	LightPole2 ObjectID = "light_pole2"
	LightPole3 ObjectID = "light_pole3"
	Candle1    ObjectID = "candle1"
	Candle2    ObjectID = "candle2"
	Candle3    ObjectID = "candle3"
)

// Pivots of the animated props.
var (
	CatPivot    = mgl32.Vec3{1.00869, 0.06932, -2.18939}
	SpoonPivot  = mgl32.Vec3{0.59, 0.08, -2.67}
	TeapotPivot = mgl32.Vec3{0.118652, 0.128433, -1.67852}
)

var (
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

func catTransform(a *animation.State) mgl32.Mat4 {
	return PivotRotation(CatPivot, axisY, mgl32.DegToRad(a.Cat.Angle()))
}

func spoonTransform(a *animation.State) mgl32.Mat4 {
	return PivotRotation(SpoonPivot, axisY, mgl32.DegToRad(a.SpoonAngle()))
}

func teapotTransform(a *animation.State) mgl32.Mat4 {
	return PivotRotation(TeapotPivot, axisZ, a.Teapot.Angle())
}

func broomTransform(a *animation.State) mgl32.Mat4 {
	return mgl32.Translate3D(0, a.BroomOffset(), 0)
}

// Cottage returns the registry of the witch hut scene, meshes not yet attached.
func Cottage() (*Registry, error) {
	return Build(cottageObjects())
}

func cottageObjects() []Object {
	return []Object{
		{ID: MainScene, MeshPath: "models/main_scene/main_scene.obj"},
		{ID: Ground, MeshPath: "models/ground/ground.obj"},
		{ID: Broom, MeshPath: "models/main_scene/broom.obj", Transform: broomTransform},
		{ID: Teapot, MeshPath: "models/main_scene/teapot.obj", Transform: teapotTransform},
		{ID: Spoon, MeshPath: "models/main_scene/spoon.obj", Transform: spoonTransform},
		{ID: Cat, MeshPath: "models/main_scene/cat.obj", Transform: catTransform},
		{ID: BigGrass, MeshPath: "models/main_scene/big_grass.obj"},

		{ID: HouseLight, Kind: Glow, MeshPath: "models/main_scene/house_light.obj"},
		{ID: LightPole1, Kind: Glow, MeshPath: "models/main_scene/light_pole1.obj"},
		{ID: LightPole2, Kind: Glow, MeshPath: "models/main_scene/light_pole2.obj"},
		{ID: LightPole3, Kind: Glow, MeshPath: "models/main_scene/light_pole3.obj"},
		{ID: Candle1, Kind: Glow, MeshPath: "models/main_scene/candle1.obj"},
		{ID: Candle2, Kind: Glow, MeshPath: "models/main_scene/candle2.obj"},
		{ID: Candle3, Kind: Glow, MeshPath: "models/main_scene/candle3.obj"},
	}
}
