// Package ctf provides schema declaration for CTF input streams.
package ctf

import "fmt"

// Role declares whether an input stream carries features or labels.
type Role int

const (
	// Feature marks a stream consumed as model input.
	Feature Role = iota
	// Label marks a stream consumed as training target.
	Label
)

// String returns the string representation of Role.
func (r Role) String() string {
	switch r {
	case Feature:
		return "feature"
	case Label:
		return "label"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Storage declares how an input stream's values are laid out.
type Storage int

const (
	// Dense streams carry positional values up to a declared dimension.
	Dense Storage = iota
	// Sparse streams carry explicit index:value pairs.
	Sparse
)

// String returns the string representation of Storage.
func (s Storage) String() string {
	switch s {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return fmt.Sprintf("Storage(%d)", int(s))
	}
}

// StreamDescriptor declares one named input stream that file samples are
// matched against. Descriptors are immutable once handed to NewSchema.
type StreamDescriptor struct {
	// ID is a small unique integer identifying the stream.
	ID int
	// Name is matched against the |name token in the file.
	Name string
	// Alias is an optional alternate match name.
	Alias string
	// Dimension is the declared vector width. It applies to dense streams
	// only; 0 leaves the stream unconstrained.
	Dimension int
	// Role is the stream's role in the learning pipeline.
	Role Role
	// Storage is the stream's value layout.
	Storage Storage
}

// SchemaError reports an invalid schema configuration. It is raised at
// schema construction, before any parsing begins.
type SchemaError struct {
	Name    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Name == "" {
		return "ctf: invalid schema: " + e.Message
	}
	return "ctf: invalid schema stream " + e.Name + ": " + e.Message
}

// Schema is the immutable set of declared input streams. It is safe for
// unsynchronized concurrent reads because it is never mutated after
// construction.
type Schema struct {
	descriptors []StreamDescriptor
	byName      map[string]int
	byAlias     map[string]int
}

// NewSchema validates the descriptors and returns a Schema. Stream ids must
// be unique, names must be unique and non-empty, and aliases must not
// collide with any name or other alias. Dimensions must not be negative.
func NewSchema(descriptors ...StreamDescriptor) (*Schema, error) {
	if len(descriptors) == 0 {
		return nil, &SchemaError{Message: "at least one input stream must be declared"}
	}
	s := &Schema{
		descriptors: make([]StreamDescriptor, len(descriptors)),
		byName:      make(map[string]int, len(descriptors)),
		byAlias:     make(map[string]int),
	}
	copy(s.descriptors, descriptors)

	seenIDs := make(map[int]bool, len(descriptors))
	for i, d := range s.descriptors {
		if d.Name == "" {
			return nil, &SchemaError{Message: fmt.Sprintf("stream %d has an empty name", i)}
		}
		if d.Dimension < 0 {
			return nil, &SchemaError{Name: d.Name, Message: "negative dimension"}
		}
		if seenIDs[d.ID] {
			return nil, &SchemaError{Name: d.Name, Message: fmt.Sprintf("duplicate stream id %d", d.ID)}
		}
		seenIDs[d.ID] = true
		if _, dup := s.byName[d.Name]; dup {
			return nil, &SchemaError{Name: d.Name, Message: "duplicate stream name"}
		}
		s.byName[d.Name] = i
	}
	// Aliases resolve only after all names are registered so a collision is
	// caught regardless of declaration order.
	for i, d := range s.descriptors {
		if d.Alias == "" || d.Alias == d.Name {
			continue
		}
		if _, taken := s.byName[d.Alias]; taken {
			return nil, &SchemaError{Name: d.Name, Message: fmt.Sprintf("alias %q collides with a stream name", d.Alias)}
		}
		if _, taken := s.byAlias[d.Alias]; taken {
			return nil, &SchemaError{Name: d.Name, Message: fmt.Sprintf("duplicate alias %q", d.Alias)}
		}
		s.byAlias[d.Alias] = i
	}
	return s, nil
}

// Len returns the number of declared streams.
func (s *Schema) Len() int {
	return len(s.descriptors)
}

// Descriptors returns the declared streams in declaration order.
// The returned slice must not be mutated.
func (s *Schema) Descriptors() []StreamDescriptor {
	return s.descriptors
}

// Resolve returns the descriptor matching name, by exact name match first
// and exact alias match second. It fails with ErrUnknownStream when the
// name is not declared.
func (s *Schema) Resolve(name string) (StreamDescriptor, error) {
	if i, ok := s.indexOf(name); ok {
		return s.descriptors[i], nil
	}
	return StreamDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownStream, name)
}

// indexOf returns the declaration position of the stream matching name.
func (s *Schema) indexOf(name string) (int, bool) {
	if i, ok := s.byName[name]; ok {
		return i, true
	}
	if i, ok := s.byAlias[name]; ok {
		return i, true
	}
	return 0, false
}
