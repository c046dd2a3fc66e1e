package core

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T           float64   // Parameter t along the ray, always > RayEpsilon
	Point       Vec3      // Point of intersection
	Normal      Vec3      // Unit outward normal, not flipped towards the ray
	Material    *Material // Material of the hit object
	ObjectID    int       // Stable per-object key, used by the medium stack
	HasInterior bool      // Whether the object encloses a volume
}

// Object carries the identity and material shared by every scene shape.
// Shapes embed it and the scene assigns IDs in insertion order.
type Object struct {
	id       int
	Material *Material
}

// ID returns the object's identity key
func (o *Object) ID() int {
	return o.id
}

// SetID assigns the object's identity key
func (o *Object) SetID(id int) {
	o.id = id
}

// NewHit creates a hit record stamped with the object's identity and material
func (o *Object) NewHit(ray Ray, t float64, normal Vec3, interior bool) *HitRecord {
	return &HitRecord{
		T:           t,
		Point:       ray.At(t),
		Normal:      normal,
		Material:    o.Material,
		ObjectID:    o.id,
		HasInterior: interior,
	}
}
