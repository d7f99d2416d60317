package asset

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarvaliya/folio/internal/response"
)

// RegisterRoutes mounts the resume and image endpoints under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service, errs response.Writer) {
	handler := &httpHandler{service: service, errs: errs}
	group.POST("/upload-resume", handler.uploadResume)
	group.DELETE("/remove-resume", handler.removeResume)
	group.GET("/resume-info", handler.resumeInfo)
	group.POST("/upload-image", handler.uploadImage)
	group.DELETE("/delete-image/:fileName", handler.deleteImage)
	group.DELETE("/delete-image/", handler.deleteImage)
}

type httpHandler struct {
	service *Service
	errs    response.Writer
}

// storageMessages holds the client-facing prefix per failed storage operation.
type storageMessages map[string]string

var (
	resumeMessages = storageMessages{
		OpPut:    "Upload failed",
		OpSign:   "Failed to create download URL",
		OpDelete: "Failed to delete file",
	}
	imageMessages = storageMessages{
		OpPut:    "Upload failed",
		OpSign:   "Failed to create image URL",
		OpDelete: "Failed to delete image",
	}
)

func (h *httpHandler) uploadResume(c *gin.Context) {
	fileHeader, ok := h.formFile(c)
	if !ok {
		return
	}

	result, err := h.service.UploadResume(c.Request.Context(), fileHeader)
	if err != nil {
		h.fail(c, err, resumeMessages)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      result.URL,
		"fileName": result.OriginalName,
	})
}

func (h *httpHandler) removeResume(c *gin.Context) {
	if err := h.service.RemoveResume(c.Request.Context()); err != nil {
		h.fail(c, err, resumeMessages)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *httpHandler) resumeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ResumeInfo(c.Request.Context()))
}

func (h *httpHandler) uploadImage(c *gin.Context) {
	fileHeader, ok := h.formFile(c)
	if !ok {
		return
	}

	result, err := h.service.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		h.fail(c, err, imageMessages)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"url":          result.URL,
		"fileName":     result.Key,
		"originalName": result.OriginalName,
	})
}

func (h *httpHandler) deleteImage(c *gin.Context) {
	if err := h.service.DeleteImage(c.Request.Context(), c.Param("fileName")); err != nil {
		h.fail(c, err, imageMessages)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// formFile reads the "file" part. A request without one, or without a
// multipart body at all, is a validation failure.
func (h *httpHandler) formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			h.errs.BadRequest(c, msgNoFile)
			return nil, false
		}
		_ = c.Error(err)
		h.errs.Internal(c, err)
		return nil, false
	}
	return fileHeader, true
}

func (h *httpHandler) fail(c *gin.Context, err error, messages storageMessages) {
	_ = c.Error(err)

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		h.errs.BadRequest(c, validationErr.Reason)
		return
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		if prefix, ok := messages[storageErr.Op]; ok {
			h.errs.StorageFailure(c, prefix+": "+storageErr.Err.Error())
			return
		}
	}

	h.errs.Internal(c, err)
}
