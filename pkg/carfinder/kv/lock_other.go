//go:build !unix

package kv

// lockFile only excludes writers within this process on platforms without
// flock.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
