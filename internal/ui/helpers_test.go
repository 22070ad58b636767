package ui

import "os"

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("{not json"), 0o644)
}
