// Package httpapi serves comment removal, parsing and fingerprinting over
// HTTP. Every endpoint takes a JSON-with-comments request body.
package httpapi

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc"
)

const (
	mtJSON = "application/json"

	headerRequestID = "X-Request-Id"
)

// Server holds the settings shared by all handlers.
type Server struct {
	MaxBytes int64             // request body cap, 0 means unlimited
	Numbers  jsonwc.NumberMode // number handling for /v1/parse
	Indent   bool              // pretty-print /v1/parse responses
	Schema   *jsonwc.Schema    // optional, applied by /v1/check
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/strip", s.post(s.handleStrip))
	mux.HandleFunc("/v1/parse", s.post(s.handleParse))
	mux.HandleFunc("/v1/check", s.post(s.handleCheck))
	mux.HandleFunc("/v1/canonical", s.post(s.handleCanonical))
	mux.HandleFunc("/v1/digest", s.post(s.handleDigest))
	return withRequestID(mux)
}

// NewRequestID returns a fresh ULID string.
func NewRequestID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type statusWriter struct {
	http.ResponseWriter
	status int
	n      int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.n += n
	return n, err
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id, err := NewRequestID()
		if err != nil {
			http.Error(w, "request id: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set(headerRequestID, id)
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.Printf("%s %s %s %d %dB %s", id, r.Method, r.URL.Path, sw.status, sw.n, time.Since(start).Round(time.Microsecond))
	})
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, body []byte)

func (s *Server) post(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, "use POST", nil)
			return
		}
		defer r.Body.Close()
		var body io.Reader = r.Body
		if s.MaxBytes > 0 {
			body = http.MaxBytesReader(w, r.Body, s.MaxBytes)
		}
		b, err := io.ReadAll(body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
				return
			}
			writeError(w, http.StatusBadRequest, "read: "+err.Error(), nil)
			return
		}
		h(w, r, b)
	}
}

func (s *Server) handleStrip(w http.ResponseWriter, _ *http.Request, body []byte) {
	out, err := jsonwc.Strip(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": string(out)}, false)
}

func (s *Server) handleParse(w http.ResponseWriter, _ *http.Request, body []byte) {
	mode := s.Numbers
	if mode == jsonwc.NumberDecimal {
		// json.Number keeps the exact spelling on the way back out.
		mode = jsonwc.NumberJSON
	}
	dec := jsonwc.NewDecoder(bytes.NewReader(body))
	dec.SetNumberMode(mode)
	var v any
	if err := dec.Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "", err)
		return
	}
	writeJSON(w, http.StatusOK, v, s.Indent)
}

func (s *Server) handleCheck(w http.ResponseWriter, _ *http.Request, body []byte) {
	if s.Schema == nil {
		if _, err := jsonwc.Parse(string(body)); err != nil {
			writeError(w, http.StatusBadRequest, "", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true}, false)
		return
	}
	err := s.Schema.ValidateDocument(body)
	var je *jsonwc.Error
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "schema": s.Schema.Name()}, false)
	case errors.As(err, &je):
		writeError(w, http.StatusBadRequest, "", err)
	default:
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Kind: "schema"}, false)
	}
}

func (s *Server) handleCanonical(w http.ResponseWriter, _ *http.Request, body []byte) {
	c, err := jsonwc.Canonical(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "", err)
		return
	}
	w.Header().Set("Content-Type", mtJSON)
	w.WriteHeader(http.StatusOK)
	w.Write(append(c, '\n'))
}

func (s *Server) handleDigest(w http.ResponseWriter, _ *http.Request, body []byte) {
	sum, err := jsonwc.Fingerprint(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"algorithm": "blake2b-256", "digest": sum}, false)
}

type errorBody struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Offset *int64 `json:"offset,omitempty"`
}

// writeError reports msg, or err with its position when it is a *jsonwc.Error.
func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := errorBody{Error: msg}
	if err != nil {
		body.Error = err.Error()
		var je *jsonwc.Error
		if errors.As(err, &je) {
			off := je.Offset
			body.Kind = je.Kind.String()
			body.Line, body.Column, body.Offset = je.Line, je.Column, &off
		}
	}
	writeJSON(w, status, body, false)
}

func writeJSON(w http.ResponseWriter, status int, v any, indent bool) {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		http.Error(w, "encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", mtJSON)
	w.WriteHeader(status)
	w.Write(append(b, '\n'))
}
