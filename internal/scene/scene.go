// Package scene is the registry of drawable objects shared by the shadow and
// camera passes.
package scene

import (
	"fmt"

	"github.com/Faultbox/witchhut/internal/engine/animation"
	"github.com/Faultbox/witchhut/internal/render"
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectID identifies a scene object for the lifetime of the process.
type ObjectID string

// Kind says which passes draw an object.
type Kind int

const (
	// Opaque objects cast shadows and are lit.
	Opaque Kind = iota
	// Glow objects are drawn additively after the lit scene and cast no shadow.
	Glow
)

// TransformFunc derives an object's model matrix from the animation state.
type TransformFunc func(a *animation.State) mgl32.Mat4

// Object is one mesh placed in the scene.
type Object struct {
	ID        ObjectID
	Kind      Kind
	MeshPath  string
	Transform TransformFunc // nil means identity
	Mesh      render.Drawable
}

// Model returns the object's model matrix for the given animation state.
func (o *Object) Model(a *animation.State) mgl32.Mat4 {
	if o.Transform == nil {
		return mgl32.Ident4()
	}
	return o.Transform(a)
}

// PivotRotation rotates by angle radians about axis through pivot:
// translate(pivot) * rotate * translate(-pivot).
func PivotRotation(pivot, axis mgl32.Vec3, angle float32) mgl32.Mat4 {
	return mgl32.Translate3D(pivot.X(), pivot.Y(), pivot.Z()).
		Mul4(mgl32.HomogRotate3D(angle, axis)).
		Mul4(mgl32.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z()))
}

// Registry is the single authoritative list of scene objects. Both passes
// take their draw lists from it, so they cannot drift apart.
type Registry struct {
	objects []*Object
	byID    map[ObjectID]*Object

	opaque []render.Item
	glow   []render.Item
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ObjectID]*Object)}
}

// Add registers an object. IDs must be unique.
func (r *Registry) Add(o Object) error {
	if o.ID == "" {
		return fmt.Errorf("scene object without id")
	}
	if _, ok := r.byID[o.ID]; ok {
		return fmt.Errorf("duplicate scene object %q", o.ID)
	}
	obj := o
	r.objects = append(r.objects, &obj)
	r.byID[o.ID] = &obj
	return nil
}

// Build registers objects in order and fails on the first rejected one.
func Build(objects []Object) (*Registry, error) {
	r := NewRegistry()
	for _, o := range objects {
		if err := r.Add(o); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Get returns the object with the given id.
func (r *Registry) Get(id ObjectID) (*Object, bool) {
	o, ok := r.byID[id]
	return o, ok
}

// Objects returns all objects in registration order.
func (r *Registry) Objects() []*Object {
	return r.objects
}

// Attach sets the mesh of object id.
func (r *Registry) Attach(id ObjectID, mesh render.Drawable) error {
	o, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("unknown scene object %q", id)
	}
	o.Mesh = mesh
	return nil
}

// Validate reports objects that have no mesh attached.
func (r *Registry) Validate() error {
	for _, o := range r.objects {
		if o.Mesh == nil {
			return fmt.Errorf("scene object %q has no mesh", o.ID)
		}
	}
	return nil
}

// Items evaluates every model matrix for this frame and returns the opaque
// and glow draw lists. The slices are reused on the next call.
func (r *Registry) Items(a *animation.State) (opaque, glow []render.Item) {
	r.opaque = r.opaque[:0]
	r.glow = r.glow[:0]
	for _, o := range r.objects {
		it := render.Item{Name: string(o.ID), Model: o.Model(a), Mesh: o.Mesh}
		switch o.Kind {
		case Glow:
			r.glow = append(r.glow, it)
		default:
			r.opaque = append(r.opaque, it)
		}
	}
	return r.opaque, r.glow
}
