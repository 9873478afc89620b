package layout

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/artiscan/artiscan/domain/window"
)

// Field names a sub-region of the detail pane.
type Field string

const (
	FieldTitle         Field = "title"
	FieldMainStatName  Field = "main_stat_name"
	FieldMainStatValue Field = "main_stat_value"
	FieldStars         Field = "stars"
	FieldLevel         Field = "level"
	FieldSubStat1      Field = "sub_stat_1"
	FieldSubStat2      Field = "sub_stat_2"
	FieldSubStat3      Field = "sub_stat_3"
	FieldSubStat4      Field = "sub_stat_4"
	FieldEquip         Field = "equip"
)

// SubStatFields lists the substat line regions in top-to-bottom order.
var SubStatFields = [4]Field{FieldSubStat1, FieldSubStat2, FieldSubStat3, FieldSubStat4}

// TextFields lists every region routed through the text recognizer.
// FieldStars is deliberately absent: the star row is icons, read by pixel
// analysis, not by the model.
var TextFields = []Field{
	FieldTitle, FieldMainStatName, FieldMainStatValue, FieldLevel,
	FieldSubStat1, FieldSubStat2, FieldSubStat3, FieldSubStat4, FieldEquip,
}

// GridCell is one selectable slot of the inventory grid. Rect is relative to
// the window origin. Cells iterate top-to-bottom, left-to-right.
type GridCell struct {
	Row  int
	Col  int
	Rect image.Rectangle
}

// Center returns the click point of the cell, window-relative.
func (c GridCell) Center() image.Point {
	return image.Pt((c.Rect.Min.X+c.Rect.Max.X)/2, (c.Rect.Min.Y+c.Rect.Max.Y)/2)
}

// Table is the resolved coordinate table for one window geometry.
// It is computed once per scan and read-only afterwards.
type Table struct {
	// Pane is the detail-pane rectangle, window-relative.
	Pane image.Rectangle
	// Fields maps each named region to a rectangle relative to the pane
	// origin, so crops apply directly to a pane capture.
	Fields map[Field]image.Rectangle
	// Grid holds the visible page of cells in row-major order.
	Grid []GridCell
	// Rows and Cols describe the visible page shape.
	Rows, Cols int
	// ScrollTicksPerRow is how many wheel ticks advance the grid one row.
	ScrollTicksPerRow int
}

// ErrUnsupportedAspectRatio reports a window shape with no reference table.
var ErrUnsupportedAspectRatio = errors.New("unsupported aspect ratio")

// Resolve scales the reference table for the window's aspect class to the
// actual resolution. Pure: same geometry in, same table out.
func Resolve(geom window.Geometry) (*Table, error) {
	ref, ok := references[geom.Aspect]
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d (%s)", ErrUnsupportedAspectRatio,
			geom.Width, geom.Height, geom.Aspect)
	}

	sx := float64(geom.Width) / float64(ref.w)
	sy := float64(geom.Height) / float64(ref.h)

	t := &Table{
		Pane:              scaleRect(ref.pane, sx, sy),
		Fields:            make(map[Field]image.Rectangle, len(ref.fields)),
		Rows:              ref.rows,
		Cols:              ref.cols,
		ScrollTicksPerRow: ref.scrollTicksPerRow,
	}
	for f, r := range ref.fields {
		t.Fields[f] = scaleRect(r, sx, sy)
	}

	for row := 0; row < ref.rows; row++ {
		for col := 0; col < ref.cols; col++ {
			x0 := float64(ref.gridOrigin.X + col*(ref.cellW+ref.gapX))
			y0 := float64(ref.gridOrigin.Y + row*(ref.cellH+ref.gapY))
			cell := image.Rect(
				round(x0*sx), round(y0*sy),
				round((x0+float64(ref.cellW))*sx), round((y0+float64(ref.cellH))*sy),
			)
			t.Grid = append(t.Grid, GridCell{Row: row, Col: col, Rect: cell})
		}
	}
	return t, nil
}

// scaleRect scales every edge independently and rounds to nearest pixel.
// Reference regions keep at least a two-pixel gap, so nearest rounding can
// never make neighbours overlap.
func scaleRect(r image.Rectangle, sx, sy float64) image.Rectangle {
	return image.Rect(
		round(float64(r.Min.X)*sx), round(float64(r.Min.Y)*sy),
		round(float64(r.Max.X)*sx), round(float64(r.Max.Y)*sy),
	)
}

func round(v float64) int { return int(math.Round(v)) }
