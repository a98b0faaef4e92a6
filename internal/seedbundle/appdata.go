package seedbundle

import "github.com/vmihailenco/msgpack/v5"

// DeviceAppData is the app data written by host provisioning tools.
type DeviceAppData struct {
	DeviceNumber uint32 `msgpack:"device_number"`
	GenerateBy   string `msgpack:"generate_by"`
}

// EncodeAppData msgpack-encodes v for use with SetAppData.
func EncodeAppData(v any) ([]byte, error) { return msgpack.Marshal(v) }

// DecodeAppData msgpack-decodes app data into v.
func DecodeAppData(b []byte, v any) error { return msgpack.Unmarshal(b, v) }
