// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/highwayhash"
	gocache "github.com/patrickmn/go-cache"
	"github.com/viant/afs"

	"github.com/aclements/vizspec/interp"
	"github.com/aclements/vizspec/internal/log"
)

// hashKey keys the content hash of documents. It only needs to be
// stable within one process.
var hashKey = []byte("vizrender-document-content-hash!")

const (
	cacheExpiration = 10 * time.Minute
	cacheCleanup    = 30 * time.Minute
)

// loader reads documents by path or URL and remembers the last
// content seen at each location.
type loader struct {
	fs    afs.Service
	cache *gocache.Cache
	stdin io.Reader
}

func newLoader() *loader {
	return &loader{
		fs:    afs.New(),
		cache: gocache.New(cacheExpiration, cacheCleanup),
		stdin: os.Stdin,
	}
}

// contentHash returns the hex highwayhash of b.
func contentHash(b []byte) (string, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// documentURL returns the afs URL of a document location. Locations
// without a scheme are local paths.
func documentURL(location string) (string, error) {
	if strings.Contains(location, "://") {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func (l *loader) read(ctx context.Context, location string) ([]byte, error) {
	if location == "-" {
		return io.ReadAll(l.stdin)
	}
	url, err := documentURL(location)
	if err != nil {
		return nil, err
	}
	return l.fs.DownloadWithURL(ctx, url)
}

// load reads and parses the document at location. changed reports
// whether its content differs from the previous load of the same
// location; unchanged documents are returned from the cache.
func (l *loader) load(ctx context.Context, location string) (doc *interp.Document, changed bool, err error) {
	b, err := l.read(ctx, location)
	if err != nil {
		return nil, false, err
	}
	sum, err := contentHash(b)
	if err != nil {
		return nil, false, err
	}
	if last, ok := l.cache.Get("hash:" + location); ok && last.(string) == sum {
		if doc, ok := l.cache.Get("doc:" + sum); ok {
			log.Debug(log.CatWatch, "cache hit", "location", location, "hash", sum)
			return doc.(*interp.Document), false, nil
		}
	}
	doc, err = interp.ParseBytes(b)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", location, err)
	}
	l.cache.SetDefault("hash:"+location, sum)
	l.cache.SetDefault("doc:"+sum, doc)
	log.Debug(log.CatSpec, "loaded document", "location", location, "hash", sum, "sections", len(doc.Sections))
	return doc, true, nil
}
