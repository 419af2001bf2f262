package report

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/burrscurr/linesman/measure"
)

var csvHeader = []string{"index", "lon", "lat", "foot_lon", "foot_lat", "deviation_m"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes one row per track point with its foot on the reference
// line and its deviation in meters.
func WriteCSV(w io.Writer, m *measure.Measure) error {
	cw := csv.NewWriter(w)
	if err := writeRows(cw, m); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Satisfied by *csv.Writer and *CSVWriteCloser.
type recordWriter interface {
	Write(record []string) error
}

func writeRows(rw recordWriter, m *measure.Measure) error {
	if err := rw.Write(csvHeader); err != nil {
		return err
	}
	points, feet := m.Points(), m.Feet()
	for i, d := range m.Deviations() {
		record := []string{
			strconv.Itoa(i),
			formatFloat(points[i].X), formatFloat(points[i].Y),
			formatFloat(feet[i].X), formatFloat(feet[i].Y),
			formatFloat(d),
		}
		if err := rw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// CSVWriteCloser writes CSV records to a file, compressing them if the file
// name ends in ".gz".
type CSVWriteCloser struct {
	f   *os.File
	gzw *gzip.Writer
	cw  *csv.Writer
}

// OpenCSVFile creates or truncates the named file.
func OpenCSVFile(path string) (*CSVWriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	p := &CSVWriteCloser{f: f}
	if strings.HasSuffix(path, ".gz") {
		p.gzw = gzip.NewWriter(f)
		p.cw = csv.NewWriter(p.gzw)
	} else {
		p.cw = csv.NewWriter(f)
	}
	glog.V(1).Infof("Opened %s for writing (compressed: %v)", path, p.gzw != nil)
	return p, nil
}

func (p *CSVWriteCloser) Write(record []string) error {
	return p.cw.Write(record)
}

// WriteMeasure writes the same rows as WriteCSV.
func (p *CSVWriteCloser) WriteMeasure(m *measure.Measure) error {
	return writeRows(p, m)
}

func (p *CSVWriteCloser) Close() error {
	p.cw.Flush()
	err := p.cw.Error()
	if p.gzw != nil {
		if err2 := p.gzw.Close(); err == nil {
			err = err2
		}
	}
	if err2 := p.f.Close(); err == nil {
		err = err2
	}
	return err
}
