package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.Get("STORAGE_DISK", "local")

	disks["local"] = newLocalDisk()

	// The S3 disk boots only when a bucket is configured.
	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
//
//	storage.Use("s3").Put(ctx, "products/p1.jpg", file)
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation at boot time.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// ─── Default disk helpers ─────────────────────────────────────────────────────
// These proxy to the default disk (STORAGE_DISK env var, default "local").

func defaultD() Disk { return Use(defaultDisk) }

// Put writes from r to path on the default disk.
func Put(ctx context.Context, path string, r io.Reader) error {
	return defaultD().Put(ctx, path, r)
}

// Get returns a ReadCloser from the default disk.
func Get(ctx context.Context, path string) (io.ReadCloser, error) {
	return defaultD().Get(ctx, path)
}

// Exists reports whether path exists on the default disk.
func Exists(ctx context.Context, path string) bool { return defaultD().Exists(ctx, path) }

// Delete removes path from the default disk.
func Delete(ctx context.Context, path string) error { return defaultD().Delete(ctx, path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// Files lists files under prefix on the default disk.
func Files(ctx context.Context, prefix string) ([]string, error) {
	return defaultD().Files(ctx, prefix)
}
