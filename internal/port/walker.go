package port

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string // absolute path on disk
	RelPath string // slash-separated path relative to the walked root
	ModTime int64  // unix nanoseconds
	Size    int64
}

// TextExtractor turns a file on disk into plain indexable text.
type TextExtractor interface {
	ExtractFile(path string) (string, error)
}
