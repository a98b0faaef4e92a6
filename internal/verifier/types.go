package verifier

// VerifyRequest is the body of POST /verify.
type VerifyRequest struct {
	// Message is standard base64 of the signed bytes.
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Windowed  bool   `json:"windowed,omitempty"`
}

// VerifyResponse is the reply to POST /verify.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// AdminResponse is the reply to GET /admin.
type AdminResponse struct {
	PublicKey string `json:"public_key"`
	HCID      string `json:"hcid"`
}
