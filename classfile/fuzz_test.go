package classfile

import "testing"

// FuzzParse exercises Parse against arbitrary byte streams, seeded from a
// minimal valid class file. Nothing here should ever panic; every failure
// mode is a returned error.
func FuzzParse(f *testing.F) {
	f.Add(minimalClass())
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = Parse(data, nil)
	})
}
