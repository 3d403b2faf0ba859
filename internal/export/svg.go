// Package export renders a path document to a standalone SVG file.
package export

import (
	"fmt"
	"strings"

	"github.com/regalagram/sspe-sub014/internal/path"
)

// SVG serializes the document as a standalone SVG file. Paths are emitted
// in paint order; sub-paths concatenate into a single d attribute per
// path element.
func SVG(doc *path.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		doc.Width, doc.Height, doc.Width, doc.Height)
	b.WriteByte('\n')

	for _, pathID := range doc.Order {
		p, ok := doc.Paths[pathID]
		if !ok {
			continue
		}

		d := pathData(doc, p)
		if d == "" {
			continue
		}

		fill := p.Fill
		if fill == "" {
			fill = "none"
		}
		stroke := p.Stroke
		if stroke == "" {
			stroke = "none"
		}

		fmt.Fprintf(&b, `  <path d="%s" fill="%s" stroke="%s" stroke-width="%s"/>`,
			d, fill, stroke, formatNum(p.StrokeWidth))
		b.WriteByte('\n')
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func pathData(doc *path.Document, p path.Path) string {
	var parts []string

	for _, subID := range p.SubPaths {
		sp, ok := doc.SubPaths[subID]
		if !ok {
			continue
		}

		for _, cmdID := range sp.Commands {
			cmd, ok := doc.Commands[cmdID]
			if !ok {
				continue
			}

			switch cmd.Type {
			case path.CommandMove:
				parts = append(parts, fmt.Sprintf("M %s %s", formatNum(cmd.Point.X), formatNum(cmd.Point.Y)))
			case path.CommandLine:
				parts = append(parts, fmt.Sprintf("L %s %s", formatNum(cmd.Point.X), formatNum(cmd.Point.Y)))
			case path.CommandCubic:
				if cmd.C1 == nil || cmd.C2 == nil {
					continue
				}
				parts = append(parts, fmt.Sprintf("C %s %s %s %s %s %s",
					formatNum(cmd.C1.X), formatNum(cmd.C1.Y),
					formatNum(cmd.C2.X), formatNum(cmd.C2.Y),
					formatNum(cmd.Point.X), formatNum(cmd.Point.Y)))
			case path.CommandClose:
				parts = append(parts, "Z")
			}
		}

		if sp.Closed && (len(sp.Commands) == 0 || doc.Commands[sp.Commands[len(sp.Commands)-1]].Type != path.CommandClose) {
			parts = append(parts, "Z")
		}
	}

	return strings.Join(parts, " ")
}

// formatNum trims trailing zeros for compact output.
func formatNum(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.4f", v), "0")
	return strings.TrimRight(s, ".")
}
