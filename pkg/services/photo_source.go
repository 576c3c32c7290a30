package services

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Photo is one image inside a project folder
type Photo struct {
	// Path is slash separated and relative to the project folder
	Path string
	URL  string
}

// PhotoSource lists project folders and the photos inside them
type PhotoSource interface {
	// Folders returns the names of the project folders
	Folders(ctx context.Context) ([]string, error)
	// Photos returns every photo under folder, in any order
	Photos(ctx context.Context, folder string) ([]Photo, error)
}

// LocalSource reads projects from <publicDir>/projects/<folder>/...
type LocalSource struct {
	publicDir string
}

// NewLocalSource creates a LocalSource rooted at the site's public directory
func NewLocalSource(publicDir string) *LocalSource {
	return &LocalSource{publicDir: publicDir}
}

// Root returns the directory holding the project folders
func (s *LocalSource) Root() string {
	return filepath.Join(s.publicDir, "projects")
}

// Folders returns every non-hidden directory directly under Root
func (s *LocalSource) Folders(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Root())
	if err != nil {
		return nil, err
	}

	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		folders = append(folders, entry.Name())
	}
	return folders, nil
}

// Photos walks folder recursively and returns each photo with its URL path
func (s *LocalSource) Photos(ctx context.Context, folder string) ([]Photo, error) {
	files, err := s.Files(ctx, folder)
	if err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(files))
	for _, rel := range files {
		rel = filepath.ToSlash(rel)
		photos = append(photos, Photo{Path: rel, URL: PhotoURL(folder, rel)})
	}
	return photos, nil
}

// PhotoURL builds the escaped public path of a photo in a project folder
func PhotoURL(folder, rel string) string {
	segments := append([]string{"", "projects", folder}, strings.Split(rel, "/")...)
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// Files walks folder recursively and returns photo paths relative to the folder
func (s *LocalSource) Files(ctx context.Context, folder string) ([]string, error) {
	dir := filepath.Join(s.Root(), folder)

	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if strings.HasPrefix(d.Name(), ".") && p != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsPhoto(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
