// Package verifier serves and consumes admin signature verification over
// HTTP.
//
// A host runs the Handler with its admin public key; tooling uses Client
// to ask whether a signature was made by the host's admin.
//
// HTTP API
//
//	POST /verify {"message": base64, "signature": base64, "windowed": bool}
//	    Reply {"valid": bool}. With "windowed" the decoded message is the
//	    JSON payload of a time-window signature.
//
//	GET /admin
//	    Reply {"public_key": base64, "hcid": "HcA..."}.
//
// Non-2xx statuses carry a short error message.
package verifier
