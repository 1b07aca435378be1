package main

import (
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard copies text to the system clipboard. It initializes lazily and
// silently does nothing where no clipboard is available.
type Clipboard struct {
	mu          sync.Mutex
	initOnce    sync.Once
	initialized bool
}

func (c *Clipboard) init() {
	c.initOnce.Do(func() {
		c.initialized = clipboard.Init() == nil
	})
}

// Copy writes text and reports whether the clipboard took it.
func (c *Clipboard) Copy(text string) bool {
	c.init()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return true
}

// IsAvailable returns whether the clipboard could be initialized.
func (c *Clipboard) IsAvailable() bool {
	c.init()
	return c.initialized
}
