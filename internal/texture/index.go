package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// extRank orders candidate files for the same stem; higher wins.
// OZT carries alpha, so it beats OZJ.
var extRank = map[string]int{
	".jpg": 1, ".jpeg": 1, ".png": 2, ".tga": 2, ".ozj": 3, ".ozt": 4,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string
}

// BuildIndex walks each directory tree and indexes every texture it finds.
// Missing directories are skipped.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			idx.add(path)
			return nil
		})
	}
	return idx
}

func (idx *Index) add(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	rank, ok := extRank[ext]
	if !ok {
		return
	}
	stem := stemOf(path)
	if existing, ok := idx.entries[stem]; ok && extRank[strings.ToLower(filepath.Ext(existing))] >= rank {
		return
	}
	idx.entries[stem] = path
}

// ResolvePath returns the file for a texture reference such as
// "Monsters\\texture\\foo.jpg", matched by case-insensitive stem.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	path, ok := idx.entries[stemOf(texName)]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int { return len(idx.entries) }

func stemOf(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
