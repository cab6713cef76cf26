package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/services"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

// MediaHandler relays proof-of-payment and content images to the media host.
type MediaHandler struct {
	media *services.MediaService
}

func NewMediaHandler(media *services.MediaService) (*MediaHandler, error) {
	if media == nil {
		return nil, errors.New("media handler: media service is required")
	}
	return &MediaHandler{media: media}, nil
}

// Upload sends one multipart file to the media host and returns its public
// identifier and URL.
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperrors.NewBadRequest("file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, apperrors.NewBadRequest("unable to read file"))
		return
	}
	defer file.Close()

	result, err := h.media.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// UploadBatch sends every file in the "files" field. Failures are reported
// per file; successful uploads are never discarded.
func (h *MediaHandler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, apperrors.NewBadRequest("multipart form is required"))
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.Error(c, apperrors.NewBadRequest("at least one file is required"))
		return
	}

	files := make([]services.NamedFile, 0, len(headers))
	unreadable := make([]services.UploadResult, 0)
	openers := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, f := range openers {
			f.Close()
		}
	}()

	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			unreadable = append(unreadable, services.UploadResult{
				Filename: hdr.Filename,
				Error:    "unable to read file",
			})
			continue
		}
		openers = append(openers, f)
		files = append(files, services.NamedFile{Name: hdr.Filename, Content: f})
	}

	results := append(h.media.UploadAll(c.Request.Context(), files), unreadable...)
	response.SuccessWithMeta(c, http.StatusOK, results, &response.Meta{Count: len(results)})
}
