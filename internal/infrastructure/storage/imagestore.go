// Package storage places uploaded images on disk under the uploads root.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/unicode/norm"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/shared/constants"
	"repairdesk/internal/shared/id"
	"repairdesk/internal/shared/logger"
)

// ErrUnsupportedMediaType is returned when an upload is not an allowed image.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

var allowedMediaTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// UploadedFile is one file taken from a request. Open is called once by Store.
type UploadedFile struct {
	OriginalName string
	ContentType  string
	Size         int64
	Open         func() (io.ReadCloser, error)
}

// StoredFile describes a file written under the uploads root.
type StoredFile struct {
	// Path is relative to the uploads root and always uses forward slashes.
	Path         string
	OriginalName string
	Size         int64
}

// ImageStore writes uploads into per-purpose directories and removes them
// again on request.
type ImageStore struct {
	root   string
	logger logger.Interface
	now    func() time.Time
}

func NewImageStore(root string, log logger.Interface) *ImageStore {
	return &ImageStore{
		root:   root,
		logger: log,
		now:    time.Now,
	}
}

func (s *ImageStore) Root() string {
	return s.root
}

// Validate checks the extension and declared media type of f. Store also
// checks the content itself.
func (s *ImageStore) Validate(f UploadedFile) error {
	ext := strings.ToLower(filepath.Ext(f.OriginalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: extension %q", ErrUnsupportedMediaType, ext)
	}
	if !mimetype.EqualsAny(f.ContentType, allowedMediaTypes...) {
		return fmt.Errorf("%w: media type %q", ErrUnsupportedMediaType, f.ContentType)
	}
	return nil
}

// Store writes f into the directory for kind and returns its relative path.
func (s *ImageStore) Store(ctx context.Context, f UploadedFile, kind repair.ImageKind) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.Validate(f); err != nil {
		return nil, err
	}

	src, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	head, err := sniffImage(src)
	if err != nil {
		return nil, err
	}

	dir, prefix, err := purposeDir(kind)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name, err := id.FileName(prefix, s.now(), filepath.Ext(f.OriginalName))
	if err != nil {
		return nil, fmt.Errorf("failed to generate file name: %w", err)
	}
	rel := path.Join(dir, name)

	dst, err := os.OpenFile(filepath.Join(s.root, filepath.FromSlash(rel)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	written, copyErr := io.Copy(dst, io.MultiReader(bytes.NewReader(head), src))
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		s.Delete(rel)
		return nil, fmt.Errorf("failed to write file: %w", errors.Join(copyErr, closeErr))
	}

	return &StoredFile{
		Path:         rel,
		OriginalName: norm.NFC.String(f.OriginalName),
		Size:         written,
	}, nil
}

// sniffLen is the number of leading bytes inspected for the content type.
const sniffLen = 3072

// sniffImage reads the head of src and checks that the content is one of
// the allowed image types. The bytes read are returned so the caller can
// write them before the rest of src.
func sniffImage(src io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	for _, allowed := range allowedMediaTypes {
		if detected.Is(allowed) {
			return head, nil
		}
	}
	return nil, fmt.Errorf("%w: content is %q", ErrUnsupportedMediaType, detected.String())
}

// Delete removes the file at p. It reports whether a file was removed and
// never fails the caller.
func (s *ImageStore) Delete(p string) bool {
	full, ok := s.resolve(p)
	if !ok {
		if p != "" {
			s.logger.Warnw("refusing to delete file outside uploads root", "path", p)
		}
		return false
	}
	if err := os.Remove(full); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnw("failed to delete file", "path", p, "error", err)
		}
		return false
	}
	return true
}

// Reconcile deletes the files of every image keep does not retain and
// returns those images so the caller can remove their rows.
func (s *ImageStore) Reconcile(existing []*repair.Image, keep repair.KeepSet) []*repair.Image {
	removed := repair.Unkept(existing, keep)
	for _, img := range removed {
		s.Delete(img.FilePath())
	}
	return removed
}

// resolve maps a stored path to a location inside the root.
func (s *ImageStore) resolve(p string) (string, bool) {
	rel, ok := RelativePath(p)
	if !ok {
		return "", false
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), true
}

// RelativePath reduces any accepted stored path form to a clean path
// relative to the uploads root. It rejects paths escaping the root.
func RelativePath(p string) (string, bool) {
	rel := NormalizePath(p)
	rel = strings.TrimPrefix(rel, strings.TrimPrefix(constants.UploadsURLPrefix, "/")+"/")
	if rel == "" {
		return "", false
	}
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return clean, true
}

// NormalizePath converts separators to forward slashes and strips any
// leading "./" or "/" so stored paths are relative to the uploads root.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	for {
		switch {
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		case strings.HasPrefix(p, "/"):
			p = p[1:]
		default:
			return p
		}
	}
}

func purposeDir(kind repair.ImageKind) (dir, prefix string, err error) {
	switch kind {
	case repair.ImageKindRepair:
		return constants.DirRepairImages, id.PrefixRepairImage, nil
	case repair.ImageKindCompletion:
		return constants.DirCompletionImages, id.PrefixCompletionImage, nil
	default:
		return "", "", fmt.Errorf("unknown image purpose: %s", kind)
	}
}
