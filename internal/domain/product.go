package domain

import "encoding/json"

// Product is a catalog document. The catalog is schemaless upstream, so the
// document body is kept as raw JSON and served as-is.
type Product struct {
	ID   string
	Data json.RawMessage
}
