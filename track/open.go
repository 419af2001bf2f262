package track

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
)

// Open opens a file for reading, decompressing it if the name ends in ".gz".
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		glog.V(1).Infof("Opened file for reading: %s", path)
		return f, nil
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	glog.V(1).Infof("Opened compressed file for reading: %s", path)
	return &gzipReadCloser{src: f, gr: gr}, nil
}

type gzipReadCloser struct {
	src io.ReadCloser
	gr  *gzip.Reader
}

func (grc *gzipReadCloser) Read(p []byte) (int, error) {
	return grc.gr.Read(p)
}

// Close closes both the decompressor and the file, returning the first
// error.
func (grc *gzipReadCloser) Close() (err error) {
	defer func() {
		if err2 := grc.src.Close(); err == nil {
			err = err2
		}
	}()
	return grc.gr.Close()
}
