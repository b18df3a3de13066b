package repair

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/infrastructure/storage"
	"repairdesk/internal/shared/errors"
)

// UploadLimits are the hard ceilings applied before any file reaches the
// image store.
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// collectFiles returns the uploads under field, enforcing the limits.
func collectFiles(c *gin.Context, field string, limits UploadLimits) ([]storage.UploadedFile, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.NewBadRequestError("invalid multipart form", err.Error())
	}

	headers := form.File[field]
	if limits.MaxFiles > 0 && len(headers) > limits.MaxFiles {
		return nil, errors.NewPayloadTooLargeError(fmt.Sprintf("at most %d files may be uploaded per request", limits.MaxFiles))
	}

	files := make([]storage.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		if limits.MaxFileSize > 0 && fh.Size > limits.MaxFileSize {
			return nil, errors.NewPayloadTooLargeError(
				fmt.Sprintf("file %s exceeds the maximum size of %d bytes", fh.Filename, limits.MaxFileSize))
		}
		files = append(files, toUploadedFile(fh))
	}
	return files, nil
}

func toUploadedFile(fh *multipart.FileHeader) storage.UploadedFile {
	return storage.UploadedFile{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
