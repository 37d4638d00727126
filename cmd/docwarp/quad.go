package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ericlevine/docwarp/geom"
)

// parseQuad parses whitespace-separated "x,y" pairs.
func parseQuad(s string) (geom.Quadrilateral, error) {
	var quad geom.Quadrilateral
	for _, field := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("point %q is not x,y", field)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		quad = append(quad, geom.Pt(x, y))
	}
	if len(quad) != 4 {
		return nil, fmt.Errorf("need 4 points, got %d", len(quad))
	}
	return quad, nil
}
