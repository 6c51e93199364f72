// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package git

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory BlobFetcher keyed by commit and path.
//
// Content is copied on Put and on FetchBlob, so callers may reuse their
// buffers.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]map[string][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]map[string][]byte)}
}

// Put records data as the content of path at commit.
// Paths are normalised the same way Store normalises them; invalid paths
// panic because Put is only called from test and fixture setup.
func (m *MemoryStore) Put(commit, filePath string, data []byte) {
	clean, err := NormalizePath(filePath)
	if err != nil {
		panic(fmt.Sprintf("git.MemoryStore.Put: %v", err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	files, ok := m.blobs[commit]
	if !ok {
		files = make(map[string][]byte)
		m.blobs[commit] = files
	}
	files[clean] = append([]byte(nil), data...)
}

// FetchBlob implements BlobFetcher.
func (m *MemoryStore) FetchBlob(ctx context.Context, commit, filePath string) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if commit == "" {
		return nil, fmt.Errorf("%w: commit must not be empty", ErrInvalidInput)
	}
	clean, err := NormalizePath(filePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[commit][clean]
	if !ok {
		return nil, fmt.Errorf("%s:%s: %w", commit, clean, ErrBlobNotFound)
	}
	return append([]byte(nil), data...), nil
}
