package scene

import (
	"sort"

	"github.com/lixenwraith/starfall/vmath"
)

// Node is the recorded state of one visual
type Node struct {
	Visual   Visual
	Kind     Kind
	Position vmath.Vec3
	Size     float64
	Scale    float64
	Opacity  float64
	Visible  bool
	Detail   Detail
}

// Recorder is an in-memory Scene for headless runs, tests, and as a base for simple renderers
type Recorder struct {
	nodes    map[Visual]*Node
	next     Visual
	attached int
	detached int
}

func NewRecorder() *Recorder {
	return &Recorder{nodes: make(map[Visual]*Node)}
}

func (r *Recorder) Attach(kind Kind, pos vmath.Vec3, size float64) Visual {
	r.next++
	r.attached++
	r.nodes[r.next] = &Node{
		Visual:   r.next,
		Kind:     kind,
		Position: pos,
		Size:     size,
		Scale:    1,
		Opacity:  1,
		Visible:  true,
	}
	return r.next
}

func (r *Recorder) Detach(v Visual) {
	if _, ok := r.nodes[v]; !ok {
		return
	}
	delete(r.nodes, v)
	r.detached++
}

func (r *Recorder) SetVisible(v Visual, visible bool) {
	if n, ok := r.nodes[v]; ok {
		n.Visible = visible
	}
}

func (r *Recorder) SetTransform(v Visual, pos vmath.Vec3, scale, opacity float64) {
	if n, ok := r.nodes[v]; ok {
		n.Position = pos
		n.Scale = scale
		n.Opacity = opacity
	}
}

func (r *Recorder) SetDetail(v Visual, level Detail) {
	if n, ok := r.nodes[v]; ok {
		n.Detail = level
	}
}

// Node returns a copy of the recorded state
func (r *Recorder) Node(v Visual) (Node, bool) {
	n, ok := r.nodes[v]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns copies of all live nodes ordered by visual id
func (r *Recorder) Nodes() []Node {
	out := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Visual < out[j].Visual })
	return out
}

// Live returns the number of attached visuals
func (r *Recorder) Live() int { return len(r.nodes) }

// Counts returns total attach and detach calls that took effect
func (r *Recorder) Counts() (attached, detached int) { return r.attached, r.detached }
