package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// lineLogger writes "[time] [LEVEL] [STAGE] message | detail" lines. Without
// verbose only WARN and RISK lines are written.
type lineLogger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

func newLineLogger(out io.Writer, verbose bool) *lineLogger {
	return &lineLogger{out: out, verbose: verbose}
}

func (l *lineLogger) Log(level, stage, message, detail string) {
	if !l.verbose && level != "WARN" && level != "RISK" {
		return
	}
	line := fmt.Sprintf("[%s] [%s] [%s] %s", time.Now().Format("15:04:05.000"), level, stage, message)
	if strings.TrimSpace(detail) != "" {
		line += " | " + detail
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line+"\n")
}
