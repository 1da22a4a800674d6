package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/helixviz/internal/helix"
)

var pointsHeader = []string{"index", "theta", "x", "y", "z"}

// WritePointsCSV writes one row per sampled point.
func WritePointsCSV(w io.Writer, c *helix.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pointsHeader); err != nil {
		return err
	}

	for i, pt := range c.Points {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(c.Theta[i], 'g', -1, 64),
			strconv.FormatFloat(pt.X, 'g', -1, 64),
			strconv.FormatFloat(pt.Y, 'g', -1, 64),
			strconv.FormatFloat(pt.Z, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WritePointsCSVFile(path string, c *helix.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePointsCSV(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPointsCSV parses a file written by WritePointsCSV.
func ReadPointsCSV(r io.Reader) (theta []float64, points []helix.PathPoint, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(pointsHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, nil
	}

	for _, rec := range records[1:] {
		var v [4]float64
		for j := range v {
			v[j], err = strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, nil, err
			}
		}
		theta = append(theta, v[0])
		points = append(points, helix.PathPoint{X: v[1], Y: v[2], Z: v[3]})
	}
	return theta, points, nil
}
