package cryptocompare

// Exports for testing. These allow black-box tests to reach internal
// helpers without widening the public API.

// EncodeParams builds params from key/value pairs and encodes them.
func EncodeParams(kv ...string) string {
	p := newParams()
	for i := 0; i+1 < len(kv); i += 2 {
		p.set(kv[i], kv[i+1])
	}
	return p.encode()
}

// Function exports for unit testing internal logic.
var (
	Decode         = decode
	ServiceFailure = serviceFailure
)
