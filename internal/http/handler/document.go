package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/http/middleware"
	"docvault/internal/model"
	"docvault/internal/service"
)

type uploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

type fileSummary struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}

func callerIdentity(c *fiber.Ctx) (username, role string) {
	username, _ = c.Locals(middleware.UsernameLocalKey).(string)
	role, _ = c.Locals(middleware.RoleLocalKey).(string)
	return username, role
}

// UploadDocument accepts a multipart upload (field name: file) and stores it
// under the authenticated caller's ownership.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner, _ := callerIdentity(c)

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Store(c.UserContext(), owner, fh.Filename, ct, f, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(uploadResponse{ID: doc.ID, Filename: doc.Filename})
	}
}

// ListFiles returns the documents owned by the authenticated caller, oldest
// first. An account with no documents gets an empty array, not an error.
func ListFiles(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner, _ := callerIdentity(c)

		docs, err := svc.List(c.UserContext(), owner)
		if err != nil {
			return writeServiceError(c, err)
		}

		res := make([]fileSummary, 0, len(docs))
		for _, d := range docs {
			res = append(res, fileSummary{
				ID:          d.ID,
				Filename:    d.Filename,
				Size:        d.Size,
				ContentType: d.ContentType,
				CreatedAt:   d.CreatedAt,
			})
		}
		return c.JSON(res)
	}
}

// DownloadFile streams a document's content. Documents owned by other accounts
// answer 404, same as ids that never existed.
func DownloadFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, doc, err := svc.Fetch(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		username, role := callerIdentity(c)
		if doc.Owner != username && role != model.RoleAdmin {
			rc.Close()
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
		// SendStream closes rc once the body has been written.
		return c.SendStream(rc, int(doc.Size))
	}
}

// DeleteDocument removes a document and its stored content. Admin only.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
