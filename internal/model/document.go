package model

import "fmt"

// Document is a root object plus the read-only lookups derived from it.
// Build it once per loaded document; it is immutable afterwards and safe
// to share across concurrent render passes.
type Document struct {
	Root  *Object
	index map[string]*Object
	order []*Object // document-order flattening of the tree
}

// NewDocument indexes the tree under root. It fails on duplicate object
// IDs and on cyclic containment, the only structural faults this layer
// treats as fatal.
func NewDocument(root *Object) (*Document, error) {
	d := &Document{
		Root:  root,
		index: make(map[string]*Object),
	}

	visiting := make(map[*Object]bool)
	var walk func(o *Object) error
	walk = func(o *Object) error {
		if visiting[o] {
			return fmt.Errorf("cyclic containment at object %q", o.ID)
		}
		visiting[o] = true
		if o.ID != "" {
			if prev, ok := d.index[o.ID]; ok && prev != o {
				return fmt.Errorf("duplicate object id %q", o.ID)
			}
			d.index[o.ID] = o
		}
		d.order = append(d.order, o)
		for _, c := range o.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		visiting[o] = false
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return d, nil
}

// Lookup resolves an object ID anywhere in the document.
func (d *Document) Lookup(id string) (*Object, bool) {
	o, ok := d.index[id]
	return o, ok
}

// Objects returns every object in document order, root first.
func (d *Document) Objects() []*Object {
	return d.order
}

// ObjectsByClass returns, in document order, the objects carrying any of
// the given class tags.
func (d *Document) ObjectsByClass(classes ...string) []*Object {
	var out []*Object
	for _, o := range d.order {
		for _, c := range classes {
			if o.HasClass(c) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// DependsOn reports whether a carries any trace property referencing b.
// It is the default dependency oracle behind traceability matrices; the
// host application may substitute its own.
func (d *Document) DependsOn(a, b *Object) bool {
	for _, p := range a.Properties {
		if p.Category != CategoryTrace {
			continue
		}
		for _, t := range p.Traces {
			if t.Target == b.ID {
				return true
			}
		}
	}
	return false
}
