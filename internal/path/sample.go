package path

import (
	"github.com/regalagram/sspe-sub014/internal/geom"
	"github.com/regalagram/sspe-sub014/internal/typeid"
)

// NewEmptyDocument creates an empty document for a new project.
func NewEmptyDocument(name string) *Document {
	return NewDocument(name, 1280, 720)
}

// NewSampleDocument builds a small document with a rectangle and a curved
// blob, enough to exercise selection, handles, and transforms.
func NewSampleDocument() *Document {
	doc := NewDocument("Sample", 1280, 720)

	rectPathID := typeid.NewPathID()
	rectSubID := typeid.NewSubPathID()
	m1 := typeid.NewCommandID()
	l1 := typeid.NewCommandID()
	l2 := typeid.NewCommandID()
	l3 := typeid.NewCommandID()
	z1 := typeid.NewCommandID()

	blobPathID := typeid.NewPathID()
	blobSubID := typeid.NewSubPathID()
	m2 := typeid.NewCommandID()
	c1 := typeid.NewCommandID()
	c2 := typeid.NewCommandID()

	doc.Order = []string{rectPathID, blobPathID}

	doc.Paths[rectPathID] = Path{
		ID:          rectPathID,
		Name:        "Rectangle",
		SubPaths:    []string{rectSubID},
		Fill:        "#e94560",
		Stroke:      "#000000",
		StrokeWidth: 2,
	}
	doc.SubPaths[rectSubID] = SubPath{
		ID:       rectSubID,
		Commands: []string{m1, l1, l2, l3, z1},
		Closed:   true,
	}
	doc.Commands[m1] = Command{ID: m1, Type: CommandMove, Point: geom.Point{X: 200, Y: 200}}
	doc.Commands[l1] = Command{ID: l1, Type: CommandLine, Point: geom.Point{X: 400, Y: 200}}
	doc.Commands[l2] = Command{ID: l2, Type: CommandLine, Point: geom.Point{X: 400, Y: 320}}
	doc.Commands[l3] = Command{ID: l3, Type: CommandLine, Point: geom.Point{X: 200, Y: 320}}
	doc.Commands[z1] = Command{ID: z1, Type: CommandClose}

	doc.Paths[blobPathID] = Path{
		ID:          blobPathID,
		Name:        "Blob",
		SubPaths:    []string{blobSubID},
		Fill:        "#0f3460",
		Stroke:      "#16213e",
		StrokeWidth: 2,
	}
	doc.SubPaths[blobSubID] = SubPath{
		ID:       blobSubID,
		Commands: []string{m2, c1, c2},
	}
	doc.Commands[m2] = Command{ID: m2, Type: CommandMove, Point: geom.Point{X: 600, Y: 300}}
	doc.Commands[c1] = Command{
		ID:    c1,
		Type:  CommandCubic,
		Point: geom.Point{X: 760, Y: 300},
		C1:    &geom.Point{X: 640, Y: 220},
		C2:    &geom.Point{X: 720, Y: 220},
	}
	doc.Commands[c2] = Command{
		ID:    c2,
		Type:  CommandCubic,
		Point: geom.Point{X: 600, Y: 300},
		C1:    &geom.Point{X: 800, Y: 380},
		C2:    &geom.Point{X: 640, Y: 380},
	}

	return doc
}
