// Package log is a thin wrapper over the standard library's log.Logger,
// writing engine diagnostics to a file sink. UCI owns stdout, so nothing
// here ever writes there.
package log

import (
	"io"
	"log"
	"os"
)

var std = log.New(io.Discard, "", log.LstdFlags)

// SetOutput redirects diagnostics to path, appending to any existing file.
// An empty path disables logging.
func SetOutput(path string) error {
	if path == "" {
		std.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	std.SetOutput(f)
	return nil
}

func Printf(format string, v ...any) { std.Printf(format, v...) }
func Println(v ...any)               { std.Println(v...) }
