package scene

import (
	"math"
	"testing"

	"github.com/Faultbox/witchhut/internal/engine/animation"
	"github.com/Faultbox/witchhut/internal/render"
	"github.com/go-gl/mathgl/mgl32"
)

type nopMesh struct{}

func (nopMesh) Draw(render.Program) {}

func nearVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestPivotRotationFixesPivot(t *testing.T) {
	for _, angle := range []float32{0, 0.3, math.Pi / 2, -2} {
		m := PivotRotation(CatPivot, axisY, angle)
		if got := transformPoint(m, CatPivot); !nearVec(got, CatPivot) {
			t.Errorf("angle %v moved the pivot to %v", angle, got)
		}
	}

	// A quarter turn about Y through (1, 0, 0) takes (2, 0, 0) to (1, 0, -1).
	m := PivotRotation(mgl32.Vec3{1, 0, 0}, axisY, math.Pi/2)
	if got := transformPoint(m, mgl32.Vec3{2, 0, 0}); !nearVec(got, mgl32.Vec3{1, 0, -1}) {
		t.Errorf("rotated point = %v, want (1, 0, -1)", got)
	}
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(Object{ID: "a"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(Object{ID: "a"}); err == nil {
		t.Error("expected duplicate id error")
	}
	if err := r.Add(Object{}); err == nil {
		t.Error("expected missing id error")
	}
	if err := r.Attach("missing", nopMesh{}); err == nil {
		t.Error("expected unknown id error")
	}
	if err := r.Validate(); err == nil {
		t.Error("expected Validate to report the missing mesh")
	}
	if err := r.Attach("a", nopMesh{}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if o, ok := r.Get("a"); !ok || o.Mesh == nil {
		t.Error("Get did not return the attached object")
	}
}

func mustCottage(t *testing.T) *Registry {
	t.Helper()
	r, err := Cottage()
	if err != nil {
		t.Fatalf("Cottage: %v", err)
	}
	return r
}

func TestBuildRejectsDuplicates(t *testing.T) {
	objects := cottageObjects()
	objects = append(objects, Object{ID: Cat, MeshPath: "models/other_cat.obj"})
	if _, err := Build(objects); err == nil {
		t.Fatal("expected error for a repeated id")
	}

	if _, err := Build([]Object{{MeshPath: "models/lamp.obj"}}); err == nil {
		t.Error("expected error for an object without an id")
	}
}

func TestCottageLayout(t *testing.T) {
	r := mustCottage(t)
	if n := len(r.Objects()); n != 14 {
		t.Fatalf("cottage has %d objects, want 14", n)
	}
	for _, o := range r.Objects() {
		if o.MeshPath == "" {
			t.Errorf("%s has no mesh path", o.ID)
		}
		if err := r.Attach(o.ID, nopMesh{}); err != nil {
			t.Fatal(err)
		}
	}

	opaque, glow := r.Items(animation.NewState())
	if len(opaque) != 7 || len(glow) != 7 {
		t.Fatalf("got %d opaque and %d glow items, want 7 and 7", len(opaque), len(glow))
	}
	for _, it := range glow {
		if it.Model != mgl32.Ident4() {
			t.Errorf("glow %s has non-identity model", it.Name)
		}
	}
}

func TestCottageTransforms(t *testing.T) {
	r := mustCottage(t)
	a := animation.NewState()
	a.Advance(0.5, true) // cat at -90 degrees, spoon at 50
	a.Teapot.Trigger()
	a.Advance(1, false) // teapot phase 0.8

	model := func(id ObjectID) mgl32.Mat4 {
		o, ok := r.Get(id)
		if !ok {
			t.Fatalf("missing %s", id)
		}
		return o.Model(a)
	}

	for _, id := range []ObjectID{MainScene, Ground, BigGrass} {
		if model(id) != mgl32.Ident4() {
			t.Errorf("%s should use the identity model", id)
		}
	}

	wantCat := PivotRotation(CatPivot, axisY, mgl32.DegToRad(a.Cat.Angle()))
	if model(Cat) != wantCat {
		t.Error("cat does not turn about its pivot")
	}
	if got := transformPoint(model(Cat), CatPivot); !nearVec(got, CatPivot) {
		t.Errorf("cat pivot moved to %v", got)
	}

	if got := transformPoint(model(Spoon), SpoonPivot); !nearVec(got, SpoonPivot) {
		t.Errorf("spoon pivot moved to %v", got)
	}
	if model(Spoon) != PivotRotation(SpoonPivot, axisY, mgl32.DegToRad(a.SpoonAngle())) {
		t.Error("spoon spin does not follow elapsed time")
	}

	if a.Teapot.Angle() == 0 {
		t.Fatal("teapot should be mid-bow")
	}
	if model(Teapot) != PivotRotation(TeapotPivot, axisZ, a.Teapot.Angle()) {
		t.Error("teapot does not tilt about Z by the bow angle")
	}

	broom := model(Broom)
	if got := transformPoint(broom, mgl32.Vec3{}); !nearVec(got, mgl32.Vec3{0, animation.LevitationOffset(a.Elapsed()), 0}) {
		t.Errorf("broom origin moved to %v", got)
	}
}

func TestItemsTrackAnimation(t *testing.T) {
	r := mustCottage(t)
	for _, o := range r.Objects() {
		if err := r.Attach(o.ID, nopMesh{}); err != nil {
			t.Fatal(err)
		}
	}
	a := animation.NewState()

	opaque, _ := r.Items(a)
	before := map[string]mgl32.Mat4{}
	for _, it := range opaque {
		before[it.Name] = it.Model
	}

	a.Advance(0.25, true)
	opaque, _ = r.Items(a)
	for _, it := range opaque {
		changed := it.Model != before[it.Name]
		animated := it.Name == string(Cat) || it.Name == string(Spoon) || it.Name == string(Broom)
		if changed != animated {
			t.Errorf("%s changed=%v, want %v", it.Name, changed, animated)
		}
	}
}
