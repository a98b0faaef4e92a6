package verifier

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"hposconfig/internal/encoding"
	"hposconfig/internal/hcid"
	"hposconfig/internal/keys"
)

// maxBody caps request bodies; requests carry a message and a signature.
const maxBody = 64 << 10

// Handler serves the verification API for one admin key.
type Handler struct {
	verifier *keys.AdminVerifier
	window   time.Duration
	now      func() time.Time
	mux      *http.ServeMux
}

// NewHandler returns a handler verifying against v. window is the length
// of the time windows used by windowed requests.
func NewHandler(v *keys.AdminVerifier, window time.Duration) *Handler {
	h := &Handler{verifier: v, window: window, now: time.Now, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /verify", h.verify)
	h.mux.HandleFunc("GET /admin", h.admin)
	return h
}

// ServeHTTP implements http.Handler and logs every request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	log.WithFields(log.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"remote":   r.RemoteAddr,
		"status":   rec.status,
		"bytes":    rec.bytes,
		"duration": time.Since(start),
	}).Info("request")
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req VerifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	msg, err := encoding.UnB64(req.Message)
	if err != nil {
		http.Error(w, "message is not base64", http.StatusBadRequest)
		return
	}

	var ok bool
	if req.Windowed {
		ok, err = h.verifier.VerifyWindow(string(msg), req.Signature, h.now(), h.window)
	} else {
		ok, err = h.verifier.Verify(msg, req.Signature)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, VerifyResponse{Valid: ok})
}

func (h *Handler) admin(w http.ResponseWriter, _ *http.Request) {
	pub := h.verifier.PublicKey()
	id, err := hcid.Encode(hcid.KindAdmin, pub[:])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, AdminResponse{PublicKey: encoding.B64(pub[:]), HCID: id})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
