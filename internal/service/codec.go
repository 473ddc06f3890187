package service

import "encoding/json"

// JSONCodec is a Connect codec for plain Go structs.
// Messages are not generated protobuf types, so the default codecs cannot be used.
type JSONCodec struct{}

// Name returns "json", which maps to the application/json content type.
func (JSONCodec) Name() string { return "json" }

// Marshal encodes msg as JSON.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal decodes JSON into msg.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
