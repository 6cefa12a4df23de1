package handler

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/service"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
	"rugstore/pkg/response"
)

var (
	imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/avif"}
	// moodboards also accept reference documents
	moodboardTypes = append([]string{"application/pdf"}, imageTypes...)

	adminFolders = map[string]bool{
		"products":    true,
		"collections": true,
		"weave-types": true,
		"pages":       true,
	}
)

type FileHandler struct {
	storage     service.FileStorage
	maxFileSize int64
	log         logger.Logger
}

func NewFileHandler(storage service.FileStorage, maxFileSize int64, log logger.Logger) *FileHandler {
	return &FileHandler{
		storage:     storage,
		maxFileSize: maxFileSize,
		log:         log.With("component", "uploads"),
	}
}

type deleteFileRequest struct {
	StorageRef string `json:"storageRef" validate:"required"`
}

// UploadMoodboard stores an attachment for the customize form.
func (h *FileHandler) UploadMoodboard(c echo.Context) error {
	stored, name, mime, size, err := h.upload(c, entity.MoodboardFolder, moodboardTypes)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, entity.UploadedFile{
		Name:        name,
		URL:         stored.URL,
		StorageRef:  stored.Ref,
		ContentType: mime,
		Size:        size,
	})
}

// UploadImage stores an admin image under one of the content folders.
func (h *FileHandler) UploadImage(c echo.Context) error {
	folder := c.QueryParam("folder")
	if !adminFolders[folder] {
		return response.Error(c, errors.BadRequest("Unknown upload folder", nil))
	}

	stored, _, _, _, err := h.upload(c, folder, imageTypes)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, stored)
}

func (h *FileHandler) DeleteImage(c echo.Context) error {
	var req deleteFileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	folder, _, _ := strings.Cut(req.StorageRef, "/")
	if !adminFolders[folder] && folder != entity.MoodboardFolder {
		return response.Error(c, errors.BadRequest("Unknown storage reference", nil))
	}
	if err := h.storage.Delete(c.Request().Context(), req.StorageRef); err != nil {
		return response.Error(c, errors.Internal("Failed to delete file", err))
	}
	return response.Success(c, map[string]string{"message": "File deleted"})
}

// upload sniffs the content rather than trusting the declared type.
func (h *FileHandler) upload(c echo.Context, folder string, allowed []string) (service.StoredFile, string, string, int64, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return service.StoredFile{}, "", "", 0, errors.BadRequest("Missing or invalid file", err)
	}
	if fileHeader.Size > h.maxFileSize {
		return service.StoredFile{}, "", "", 0, errors.BadRequest("File is too large", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return service.StoredFile{}, "", "", 0, errors.BadRequest("Failed to read file", err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return service.StoredFile{}, "", "", 0, errors.BadRequest("Failed to read file", err)
	}
	if int64(len(content)) > h.maxFileSize {
		return service.StoredFile{}, "", "", 0, errors.BadRequest("File is too large", nil)
	}

	detected := mimetype.Detect(content)
	if !mimetype.EqualsAny(detected.String(), allowed...) {
		h.log.Warn("rejected upload", "type", detected.String(), "filename", fileHeader.Filename)
		return service.StoredFile{}, "", "", 0, errors.BadRequest("Unsupported file type "+detected.String(), nil)
	}

	name := filepath.Base(fileHeader.Filename)
	stored, err := h.storage.Upload(c.Request().Context(), folder, name, detected.String(), bytes.NewReader(content))
	if err != nil {
		return service.StoredFile{}, "", "", 0, errors.Internal("Failed to store file", err)
	}
	h.log.Info("file uploaded", "ref", stored.Ref, "type", detected.String(), "size", len(content))

	return stored, name, detected.String(), int64(len(content)), nil
}
