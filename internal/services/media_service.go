package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/logger"
)

// MediaService performs unsigned uploads to the third-party media host. The
// returned public id is treated as an opaque string everywhere else.
type MediaService struct {
	uploadURL string
	preset    string
	folder    string
	http      *http.Client
	log       *zap.Logger
}

// NewMediaService constructs a media service.
func NewMediaService(uploadURL, preset, folder string) (*MediaService, error) {
	uploadURL = strings.TrimSpace(uploadURL)
	if uploadURL == "" {
		return nil, errors.New("media service: upload URL is required")
	}
	return &MediaService{
		uploadURL: uploadURL,
		preset:    strings.TrimSpace(preset),
		folder:    strings.TrimSpace(folder),
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       logger.WithModule("media"),
	}, nil
}

// UploadResult reports the outcome for one file.
type UploadResult struct {
	Filename string `json:"filename"`
	PublicID string `json:"public_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Upload sends one file to the media host and returns its public identifier.
func (s *MediaService) Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	if s == nil {
		return nil, errors.New("media service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, apperrors.ErrInternalServer.WithInternal(err)
	}
	if file != nil {
		if _, err := io.Copy(part, file); err != nil {
			return nil, apperrors.ErrInternalServer.WithInternal(err)
		}
	}
	if s.preset != "" {
		if err := writer.WriteField("upload_preset", s.preset); err != nil {
			return nil, apperrors.ErrInternalServer.WithInternal(err)
		}
	}
	if s.folder != "" {
		if err := writer.WriteField("folder", s.folder); err != nil {
			return nil, apperrors.ErrInternalServer.WithInternal(err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.ErrInternalServer.WithInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return nil, apperrors.ErrInternalServer.WithInternal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrUpstream.WithInternal(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrUpstream.WithInternal(err)
	}
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("media upload rejected",
			zap.String("filename", filename),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperrors.NewUpstream(resp.StatusCode, "Upload failed. Please try again.", nil)
	}

	var uploaded struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(payload, &uploaded); err != nil {
		return nil, apperrors.ErrUpstream.WithInternal(err)
	}

	return &UploadResult{
		Filename: filename,
		PublicID: uploaded.PublicID,
		URL:      uploaded.SecureURL,
	}, nil
}

// NamedFile pairs a filename with its content for batch uploads.
type NamedFile struct {
	Name    string
	Content io.Reader
}

// UploadAll uploads a batch. Successes are kept and failures reported per
// file; one bad file never discards the others' identifiers.
func (s *MediaService) UploadAll(ctx context.Context, files []NamedFile) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		res, err := s.Upload(ctx, f.Name, f.Content)
		if err != nil {
			results = append(results, UploadResult{
				Filename: f.Name,
				Error:    apperrors.FromError(err).Message,
			})
			continue
		}
		results = append(results, *res)
	}
	return results
}
