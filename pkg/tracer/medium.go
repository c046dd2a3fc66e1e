package tracer

import "github.com/df07/go-whitted-raytracer/pkg/core"

type changeKind int

const (
	changeNone changeKind = iota
	changeInsert
	changeRemove
)

// MediumChange records one mutation of a MediumStack so it can be undone exactly
type MediumChange struct {
	kind     changeKind
	id       int
	material *core.Material
	position int
}

type mediumEntry struct {
	id       int
	material *core.Material
}

// MediumStack tracks the transparent objects the current ray path is inside.
// Entries are keyed by object ID and kept in insertion order; the most recently
// inserted entry is the innermost medium. This is only exact for properly nested,
// non-overlapping volumes.
type MediumStack struct {
	entries []mediumEntry
}

// NewMediumStack creates an empty stack (the ray starts in vacuum)
func NewMediumStack() *MediumStack {
	return &MediumStack{entries: make([]mediumEntry, 0, 8)}
}

// Len returns the number of media the ray is inside
func (s *MediumStack) Len() int {
	return len(s.entries)
}

// Index returns the refractive index of the innermost medium, 1.0 for vacuum
func (s *MediumStack) Index() float64 {
	if len(s.entries) == 0 {
		return 1.0
	}
	return s.entries[len(s.entries)-1].material.Index
}

// Contains reports whether the object is on the stack
func (s *MediumStack) Contains(id int) bool {
	return s.find(id) >= 0
}

func (s *MediumStack) find(id int) int {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].id == id {
			return i
		}
	}
	return -1
}

// Insert pushes the object's medium. Inserting an object already present changes nothing.
func (s *MediumStack) Insert(id int, material *core.Material) MediumChange {
	if s.find(id) >= 0 {
		return MediumChange{}
	}
	s.entries = append(s.entries, mediumEntry{id: id, material: material})
	return MediumChange{kind: changeInsert, id: id, material: material, position: len(s.entries) - 1}
}

// Remove drops the object's medium wherever it sits. Removing an absent object changes nothing.
func (s *MediumStack) Remove(id int) MediumChange {
	position := s.find(id)
	if position < 0 {
		return MediumChange{}
	}
	entry := s.entries[position]
	s.entries = append(s.entries[:position], s.entries[position+1:]...)
	return MediumChange{kind: changeRemove, id: id, material: entry.material, position: position}
}

// Undo reverts a change returned by Insert, Remove or EnterOrExit, restoring the entry's position
func (s *MediumStack) Undo(change MediumChange) {
	switch change.kind {
	case changeInsert:
		s.Remove(change.id)
	case changeRemove:
		position := change.position
		if position > len(s.entries) {
			position = len(s.entries)
		}
		s.entries = append(s.entries, mediumEntry{})
		copy(s.entries[position+1:], s.entries[position:])
		s.entries[position] = mediumEntry{id: change.id, material: change.material}
	}
}

// Reset empties the stack
func (s *MediumStack) Reset() {
	s.entries = s.entries[:0]
}

// Transition describes a ray crossing the boundary of an interior-capable object
type Transition struct {
	From    float64      // Index of the medium the ray leaves
	To      float64      // Index of the medium the ray enters
	Normal  core.Vec3    // Surface normal facing the incoming ray
	Exiting bool         // Whether the ray leaves the hit object
	Change  MediumChange // Undo token for the stack mutation
}

// EnterOrExit applies the boundary crossing at hit to the stack. The ray is exiting
// when the outward normal and the direction point the same way.
func (s *MediumStack) EnterOrExit(hit *core.HitRecord, direction core.Vec3) Transition {
	tr := Transition{From: s.Index(), Normal: hit.Normal}

	if hit.Normal.Dot(direction) > core.RayEpsilon {
		tr.Exiting = true
		tr.Change = s.Remove(hit.ObjectID)
		tr.Normal = hit.Normal.Negate()
	} else {
		tr.Change = s.Insert(hit.ObjectID, hit.Material)
	}

	tr.To = s.Index()
	return tr
}
