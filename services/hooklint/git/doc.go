// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package git reads file content from the git object store.
//
// Hooks must lint what is being committed or pushed, not what happens to be
// in the working tree (a bare repository receiving a push has no working
// tree at all). Every read therefore goes through a commit reference:
//
//	store := git.NewStore(git.WithDir("/srv/repos/app.git"))
//	src, err := store.FetchBlob(ctx, "3f2a9c1", "src/index.js")
//	if errors.Is(err, git.ErrBlobNotFound) {
//	    // path absent at that commit, or names a directory
//	}
//
// # Implementations
//
//	| Type        | Backing                     | Use                   |
//	|-------------|-----------------------------|-----------------------|
//	| Store       | git cat-file (one process)  | hooks, CLI            |
//	| MemoryStore | commit -> path -> bytes map | tests, dry runs       |
//
// Both satisfy BlobFetcher, which is what consumers should accept.
//
// # Thread Safety
//
// Store is stateless after construction and safe for concurrent use.
// MemoryStore guards its map with a RWMutex.
package git
