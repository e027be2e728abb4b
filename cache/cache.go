package cache

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"

	"github.com/getsentry/sentry-go"
	jsoniter "github.com/json-iterator/go"
)

var (
	rootLock sync.RWMutex
	root     = "./cached-json"
)

// SetRoot moves the cache directory. Call it before the first query goes
// out; entries written under the old root are not migrated.
func SetRoot(dir string) {
	rootLock.Lock()
	defer rootLock.Unlock()
	root = dir
}

func rootDir() string {
	rootLock.RLock()
	defer rootLock.RUnlock()
	return root
}

type cacheKey struct {
	h64  uint64
	h64a uint64
}

var (
	savingLock sync.RWMutex
	saving     = make(map[cacheKey]struct{}, 32)
)

func lock(h cacheKey) bool {
	savingLock.Lock()
	defer savingLock.Unlock()

	_, ok := saving[h]
	if !ok {
		saving[h] = struct{}{}
	}
	return !ok
}
func unlock(h cacheKey) {
	savingLock.Lock()
	defer savingLock.Unlock()

	delete(saving, h)
}
func checkSkip(h cacheKey) bool {
	savingLock.RLock()
	defer savingLock.RUnlock()

	_, ok := saving[h]
	return ok
}

// Response loads (saveMode false) or stores (saveMode true) one decoded
// API response under group. The key is hashed into the file name, so it
// may be arbitrarily long; callers pass the rendered query text to keep
// distinct requests on distinct files.
func Response(group string, key string, r interface{}, saveMode bool) bool {
	h := fnv.New64a()
	fmt.Fprint(h, group)
	fmt.Fprint(h, key)

	ha := fnv.New64()
	fmt.Fprint(ha, group)
	fmt.Fprint(ha, key)

	hash := cacheKey{
		h64:  h.Sum64(),
		h64a: ha.Sum64(),
	}

	dir := filepath.Join(rootDir(), group)
	fsPath := filepath.Join(dir, fmt.Sprintf("%016x-%016x.json", hash.h64, hash.h64a))

	if saveMode {
		if !lock(hash) {
			return false
		}
		defer unlock(hash)

		if err := os.MkdirAll(dir, 0700); err != nil {
			sentry.CaptureException(err)
			return false
		}

		fs, err := os.Create(fsPath)
		if err != nil {
			sentry.CaptureException(err)
			return false
		}
		defer fs.Close()

		err = jsoniter.NewEncoder(fs).Encode(r)
		if err != nil {
			sentry.CaptureException(err)
			fs.Close()
			os.Remove(fsPath)
			return false
		}

		return true
	} else {
		if checkSkip(hash) {
			return false
		}

		fs, err := os.Open(fsPath)
		if err != nil {
			return false
		}
		defer fs.Close()

		err = jsoniter.NewDecoder(fs).Decode(r)
		if err != nil {
			sentry.CaptureException(err)
			return false
		}
		return true
	}
}
