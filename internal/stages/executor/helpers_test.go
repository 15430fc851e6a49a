//go:build !windows

package executor_test

import "os"

func makeExecutable(path string) error {
	return os.Chmod(path, 0o755)
}
