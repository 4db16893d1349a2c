package main

import (
	"fmt"
	"io"
	"log"

	"github.com/natefinch/lumberjack"
)

// SetLogger sends log output to a rotating log file. The returned closer
// flushes and closes the file; it is a no-op when logging to stderr.
func (c *LogConfig) SetLogger() io.Closer {
	if c == nil || c.File == "" {
		log.Println("Sending log messages to stderr since no log file specified.")
		return nopCloser{}
	}

	fmt.Printf("Sending log messages to: %s\n", c.File)
	l := &lumberjack.Logger{
		Filename: c.File,
		MaxSize:  c.MaxSizeMB,  // megabytes
		MaxAge:   c.MaxAgeDays, // days
	}
	log.SetOutput(l)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
