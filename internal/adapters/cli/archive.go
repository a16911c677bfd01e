package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// ManifestName is the index written at the root of a card archive.
const ManifestName = "manifest.json"

// ManifestEntry describes one card in an archive.
type ManifestEntry struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// archiveSink writes cards into a zip file. PNG data is stored as-is; only
// the manifest is deflated.
type archiveSink struct {
	path string
	file *os.File

	mu       sync.Mutex
	zw       *zip.Writer
	manifest []ManifestEntry
	modified time.Time
}

func newArchiveSink(path string) (*archiveSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	return &archiveSink{
		path:     path,
		file:     f,
		zw:       zip.NewWriter(f),
		modified: time.Now(),
	}, nil
}

func (s *archiveSink) Write(name string, img *sharecard.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: s.modified,
	})
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", name, err)
	}
	if _, err := w.Write(img.PNG); err != nil {
		return fmt.Errorf("adding %s to archive: %w", name, err)
	}

	s.manifest = append(s.manifest, ManifestEntry{File: name, Width: img.Width, Height: img.Height})

	return nil
}

// Close writes the manifest, sorted by file name, and finishes the zip.
func (s *archiveSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.writeManifest()
	if cerr := s.zw.Close(); err == nil {
		err = cerr
	}
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

func (s *archiveSink) writeManifest() error {
	sort.Slice(s.manifest, func(i, j int) bool { return s.manifest[i].File < s.manifest[j].File })

	w, err := s.zw.CreateHeader(&zip.FileHeader{
		Name:     ManifestName,
		Method:   zip.Deflate,
		Modified: s.modified,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s.manifest)
}

func (s *archiveSink) Location() string { return s.path }
