// Package httpfmt serves JSON reformatting over HTTP.
//
// A POST body holding a JSON object or array is parsed and written back.
// Query parameters:
//
//	pretty=1  indent the output
//	dates=1   rewrite every date string the mapper's resolver recognizes
//	          into the canonical format
package httpfmt

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/NYTimes/gziphandler"
	"github.com/karagenc/jsonlike"
)

type (
	Config struct {
		// Maximum size of a request body in bytes.
		//
		// Default: 10 MiB
		MaxBodySize int64

		// Responses smaller than this are not compressed.
		//
		// Default: gziphandler.DefaultMinSize
		MinCompressSize int

		// Default: gzip.DefaultCompression
		CompressionLevel int

		DisableCompression bool

		// For debugging purposes. Leave it nil if it is of no use.
		Debugger jsonlike.Debugger
	}

	// Options selects what Format does besides re-encoding.
	Options struct {
		Pretty bool
		Dates  bool
	}

	handler struct {
		mapper *jsonlike.Mapper
		config Config
		debug  jsonlike.Debugger
	}
)

const DefaultMaxBodySize = 10 << 20

var (
	ErrEmptyBody        = errors.New("httpfmt: empty body")
	ErrMethodNotAllowed = errors.New("httpfmt: method not allowed, use POST")
	ErrBodyTooLarge     = errors.New("httpfmt: body too large")
)

// New returns a handler formatting with m. A nil m means jsonlike.Default().
func New(m *jsonlike.Mapper, config *Config) (http.Handler, error) {
	if m == nil {
		m = jsonlike.Default()
	}
	if config == nil {
		config = new(Config)
	}
	c := *config
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = DefaultMaxBodySize
	}
	if c.MinCompressSize == 0 {
		c.MinCompressSize = gziphandler.DefaultMinSize
	}
	if c.CompressionLevel == 0 {
		c.CompressionLevel = gzip.DefaultCompression
	}
	if c.Debugger == nil {
		c.Debugger = jsonlike.NewNoopDebugger()
	}

	h := &handler{
		mapper: m,
		config: c,
		debug:  c.Debugger.WithContext("httpfmt"),
	}
	if c.DisableCompression {
		return h, nil
	}

	gz, err := gziphandler.NewGzipLevelAndMinSize(c.CompressionLevel, c.MinCompressSize)
	if err != nil {
		return nil, err
	}
	return gz(h), nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.writeError(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, http.StatusRequestEntityTooLarge, ErrBodyTooLarge)
			return
		}
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	q := r.URL.Query()
	opts := Options{
		Pretty: isSet(q.Get("pretty")),
		Dates:  isSet(q.Get("dates")),
	}
	out, err := Format(h.mapper, data, opts)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.debug.Log("formatted", fmt.Sprintf("%d bytes in, %d bytes out", len(data), len(out)))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.debug.Log("request failed", status, err)
	body, merr := h.mapper.ToBytes(map[string]string{"error": err.Error()})
	if merr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func isSet(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Format parses data as a JSON object or array and writes it back with m.
func Format(m *jsonlike.Mapper, data []byte, opts Options) ([]byte, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}

	var tree interface {
		NormalizeDates() int
		Bytes() ([]byte, error)
		Pretty() (string, error)
	}
	if data[0] == '[' {
		a, err := m.ParseArrayBytes(data)
		if err != nil {
			return nil, err
		}
		tree = a
	} else {
		o, err := m.ParseObjectBytes(data)
		if err != nil {
			return nil, err
		}
		tree = o
	}

	if opts.Dates {
		tree.NormalizeDates()
	}
	if opts.Pretty {
		s, err := tree.Pretty()
		return []byte(s), err
	}
	return tree.Bytes()
}
