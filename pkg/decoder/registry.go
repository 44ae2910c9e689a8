package decoder

import (
	"path/filepath"
	"strings"
	"sync"
)

// The plugin list is process-wide: plugin packages register
// themselves at init, the way stdlib image formats do.
var (
	registryMu sync.RWMutex
	plugins    []*Plugin
)

// Register adds a plugin to the process-wide list. It is meant to be
// called from plugin package init functions.
func Register(p *Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	plugins = append(plugins, p)
}

// Plugins returns a snapshot of the registered plugins.
func Plugins() []*Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]*Plugin(nil), plugins...)
}

// ForSuffix returns the first plugin claiming the filename suffix,
// or nil.
func ForSuffix(suffix string) *Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, p := range plugins {
		if p.SupportsSuffix(suffix) {
			return p
		}
	}
	return nil
}

// ForMIME returns the first plugin claiming the MIME type, or nil.
func ForMIME(mime string) *Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, p := range plugins {
		if p.SupportsMIME(mime) {
			return p
		}
	}
	return nil
}

// ForPath matches a plugin by the path's filename extension, or nil.
func ForPath(path string) *Plugin {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil
	}
	return ForSuffix(ext)
}
