// Package apiconnect binds the receipts RPC services to Connect handlers
// and clients.
package apiconnect

import (
	"encoding/json"
)

// Codec encodes messages as JSON. It is registered under the "json" name,
// so requests use the application/json content type.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string {
	return "json"
}

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
