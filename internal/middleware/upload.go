package middleware

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-backend/internal/config"
	"github.com/learnhub/learnhub-backend/internal/response"
)

// Context keys for the staged upload.
const (
	ContextKeyUploadPath = "upload_path"
	ContextKeyUploadName = "upload_name"
)

// StageUpload writes the request's file field to the temp directory under a
// random name before the handler runs. A request without the file field
// passes through unchanged — whether the file is required is the handler's
// decision, made after its own input validation.
func StageUpload(cfg *config.Config, log zerolog.Logger, field string) gin.HandlerFunc {
	log = log.With().Str("component", "upload_middleware").Logger()

	return func(c *gin.Context) {
		file, header, err := c.Request.FormFile(field)
		if err != nil {
			c.Next()
			return
		}
		defer file.Close()

		if header.Size > cfg.MaxUploadBytes {
			response.AbortFail(c, http.StatusBadRequest, "uploaded file exceeds the size limit")
			return
		}

		if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
			log.Error().Err(err).Str("dir", cfg.TempDir).Msg("Failed to create temp dir")
			response.AbortFail(c, http.StatusInternalServerError, "error staging uploaded file")
			return
		}

		name := uuid.New().String() + filepath.Ext(header.Filename)
		path := filepath.Join(cfg.TempDir, name)

		dst, err := os.Create(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to create staged file")
			response.AbortFail(c, http.StatusInternalServerError, "error staging uploaded file")
			return
		}

		if _, err := io.Copy(dst, file); err != nil {
			dst.Close()
			os.Remove(path)
			log.Error().Err(err).Str("path", path).Msg("Failed to write staged file")
			response.AbortFail(c, http.StatusInternalServerError, "error staging uploaded file")
			return
		}
		dst.Close()

		c.Set(ContextKeyUploadPath, path)
		c.Set(ContextKeyUploadName, name)
		c.Next()
	}
}

// GetStagedUpload returns the staged file's path and name, if a file was
// uploaded with the request.
func GetStagedUpload(c *gin.Context) (path, name string, ok bool) {
	p, exists := c.Get(ContextKeyUploadPath)
	if !exists {
		return "", "", false
	}
	n, exists := c.Get(ContextKeyUploadName)
	if !exists {
		return "", "", false
	}
	path, _ = p.(string)
	name, _ = n.(string)
	return path, name, path != "" && name != ""
}
