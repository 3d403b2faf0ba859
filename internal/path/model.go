package path

import (
	"strings"

	"github.com/regalagram/sspe-sub014/internal/geom"
)

// CommandType identifies a path segment command.
type CommandType string

const (
	CommandMove  CommandType = "M"
	CommandLine  CommandType = "L"
	CommandCubic CommandType = "C"
	CommandClose CommandType = "Z"
)

// Command is a single path segment. Point is the anchor (end point) of the
// segment; C1 and C2 are the Bezier control points, set only for cubic
// commands. Close commands carry no coordinates.
type Command struct {
	ID    string      `json:"id"`
	Type  CommandType `json:"type"`
	Point geom.Point  `json:"point"`
	C1    *geom.Point `json:"c1,omitempty"`
	C2    *geom.Point `json:"c2,omitempty"`
}

// SubPath is an ordered run of commands starting with a move.
type SubPath struct {
	ID       string   `json:"id"`
	Commands []string `json:"commands"`
	Closed   bool     `json:"closed"`
}

// Path groups sub-paths and carries the paint style.
type Path struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	SubPaths    []string `json:"subPaths"`
	Fill        string   `json:"fill"`
	Stroke      string   `json:"stroke"`
	StrokeWidth float64  `json:"strokeWidth"`
}

// Document is the flat, id-keyed path document graph. Order holds path ids
// in paint order (back to front).
type Document struct {
	Name     string             `json:"name"`
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	Order    []string           `json:"order"`
	Paths    map[string]Path    `json:"paths"`
	SubPaths map[string]SubPath `json:"subPaths"`
	Commands map[string]Command `json:"commands"`
}

// Selection is the set of selected point ids and/or sub-path ids. It is
// input to the transform engine, never mutated by it.
type Selection struct {
	PointIDs   []string `json:"pointIds"`
	SubPathIDs []string `json:"subPathIds"`
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.PointIDs) == 0 && len(s.SubPathIDs) == 0
}

// Point ids address every manipulable coordinate in the document. A
// command's anchor is addressed by the command id itself; its control
// points by "<commandID>#c1" and "<commandID>#c2".
const (
	controlSuffix1 = "#c1"
	controlSuffix2 = "#c2"
)

func splitPointID(pointID string) (commandID, control string) {
	if i := strings.IndexByte(pointID, '#'); i >= 0 {
		return pointID[:i], pointID[i:]
	}
	return pointID, ""
}

// NewDocument returns an empty document with initialized maps.
func NewDocument(name string, width, height int) *Document {
	return &Document{
		Name:     name,
		Width:    width,
		Height:   height,
		Order:    []string{},
		Paths:    map[string]Path{},
		SubPaths: map[string]SubPath{},
		Commands: map[string]Command{},
	}
}

// Point resolves a point id (anchor or control) to its current position.
func (d *Document) Point(pointID string) (geom.Point, bool) {
	cmdID, control := splitPointID(pointID)
	cmd, ok := d.Commands[cmdID]
	if !ok || cmd.Type == CommandClose {
		return geom.Point{}, false
	}

	switch control {
	case "":
		return cmd.Point, true
	case controlSuffix1:
		if cmd.C1 == nil {
			return geom.Point{}, false
		}
		return *cmd.C1, true
	case controlSuffix2:
		if cmd.C2 == nil {
			return geom.Point{}, false
		}
		return *cmd.C2, true
	}
	return geom.Point{}, false
}

// SetPoint writes a new position for a point id. Returns false for ids
// that don't resolve; nothing is written in that case.
func (d *Document) SetPoint(pointID string, p geom.Point) bool {
	cmdID, control := splitPointID(pointID)
	cmd, ok := d.Commands[cmdID]
	if !ok || cmd.Type == CommandClose {
		return false
	}

	switch control {
	case "":
		cmd.Point = p
	case controlSuffix1:
		if cmd.C1 == nil {
			return false
		}
		c := p
		cmd.C1 = &c
	case controlSuffix2:
		if cmd.C2 == nil {
			return false
		}
		c := p
		cmd.C2 = &c
	default:
		return false
	}

	d.Commands[cmdID] = cmd
	return true
}

// CompanionPointIDs returns the control-point ids that belong to a selected
// anchor. Selecting a cubic command's anchor drags its control points along
// so the curve keeps its shape. Control-point ids have no companions.
func (d *Document) CompanionPointIDs(pointID string) []string {
	cmdID, control := splitPointID(pointID)
	if control != "" {
		return nil
	}
	cmd, ok := d.Commands[cmdID]
	if !ok || cmd.Type != CommandCubic {
		return nil
	}

	var ids []string
	if cmd.C1 != nil {
		ids = append(ids, cmdID+controlSuffix1)
	}
	if cmd.C2 != nil {
		ids = append(ids, cmdID+controlSuffix2)
	}
	return ids
}

// SubPathPointIDs returns every point id in a sub-path, in command order,
// anchors followed by their control points.
func (d *Document) SubPathPointIDs(subPathID string) []string {
	sp, ok := d.SubPaths[subPathID]
	if !ok {
		return nil
	}

	var ids []string
	for _, cmdID := range sp.Commands {
		cmd, ok := d.Commands[cmdID]
		if !ok || cmd.Type == CommandClose {
			continue
		}
		ids = append(ids, cmdID)
		if cmd.C1 != nil {
			ids = append(ids, cmdID+controlSuffix1)
		}
		if cmd.C2 != nil {
			ids = append(ids, cmdID+controlSuffix2)
		}
	}
	return ids
}
