package main

import "strconv"

// AnnotationStore holds the ordered annotation set for one open document.
// Single-writer: the owning document serializes all mutation, so no
// locking is needed. Created empty and fully replaced on every analysis
// cycle.
type AnnotationStore struct {
	annotations []Annotation
	nextID      int
}

func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{nextID: 1}
}

// ReplaceAll atomically swaps the store contents, assigning fresh IDs.
// Annotations carrying IDs from a previous cycle are re-issued new ones;
// identity never survives an analysis cycle.
func (s *AnnotationStore) ReplaceAll(annotations []Annotation) {
	s.annotations = make([]Annotation, len(annotations))
	for i, a := range annotations {
		a.ID = "ann-" + strconv.Itoa(s.nextID)
		s.nextID++
		s.annotations[i] = a
	}
}

// Remove deletes the annotation with the given ID. A miss is a no-op.
func (s *AnnotationStore) Remove(id string) {
	for i, a := range s.annotations {
		if a.ID == id {
			s.annotations = append(s.annotations[:i], s.annotations[i+1:]...)
			return
		}
	}
}

// Get looks up one annotation by ID
func (s *AnnotationStore) Get(id string) (Annotation, bool) {
	for _, a := range s.annotations {
		if a.ID == id {
			return a, true
		}
	}
	return Annotation{}, false
}

// Query returns the ordered annotation list. The slice is a copy; callers
// cannot mutate store state through it.
func (s *AnnotationStore) Query() []Annotation {
	out := make([]Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// Len reports how many annotations are stored
func (s *AnnotationStore) Len() int {
	return len(s.annotations)
}
