package relay

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cloud-storage-bot/internal/shared/server/respond"
	"cloud-storage-bot/internal/shared/telemetry"
	"cloud-storage-bot/internal/shared/util"
)

const (
	tooLargeMessage      = "File is larger than 20MB. Use the Telegram bot to download it (Get button in Mini App)."
	resolveFailedMessage = "Could not resolve file"
)

// Handler wires the retrieval paths to HTTP.
type Handler struct {
	Retriever *Retriever
}

// NewHandler constructs a Handler.
func NewHandler(r *Retriever) *Handler {
	return &Handler{Retriever: r}
}

// RegisterRoutes attaches /download and /send. sendMiddleware runs before the send handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, sendMiddleware ...gin.HandlerFunc) {
	rg.GET("/download", h.download)
	send := append(append([]gin.HandlerFunc{}, sendMiddleware...), h.send)
	rg.POST("/send", send...)
}

func (h *Handler) download(c *gin.Context) {
	fileID := strings.TrimSpace(c.Query("file_id"))
	if fileID == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "file_id required")
		return
	}
	c.Set("fileId", fileID)
	name := util.SanitizeFileName(c.Query("name"), "file")

	dl, err := h.Retriever.Download(c.Request.Context(), fileID, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", "file_id required")
		case errors.Is(err, ErrFileTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", tooLargeMessage)
		case errors.Is(err, ErrUpstreamFetchFailed):
			telemetry.Warn("download.upstream_failed", map[string]any{"file_id": fileID, "err": err})
			respond.Error(c, http.StatusBadGateway, "upstream_fetch_failed", "Telegram download failed")
		default:
			telemetry.Warn("download.resolve_failed", map[string]any{"file_id": fileID, "err": err})
			respond.Error(c, http.StatusInternalServerError, "internal_error", resolveFailedMessage)
		}
		return
	}
	defer dl.Body.Close()

	headers := map[string]string{
		"Content-Disposition": `attachment; filename="` + dl.FileName + `"`,
	}
	c.DataFromReader(http.StatusOK, dl.ContentLength, dl.ContentType, dl.Body, headers)
}

func (h *Handler) send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	req.FileID = strings.TrimSpace(req.FileID)
	if req.FileID == "" || req.ChatID == 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "file_id and chat_id required")
		return
	}
	c.Set("fileId", req.FileID)
	c.Set("chatId", int64(req.ChatID))

	if _, err := h.Retriever.Relay(c.Request.Context(), req.FileID, int64(req.ChatID)); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "invalid_input", "file_id and chat_id required")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "relay_failed", "Could not send file")
		return
	}
	respond.OK(c, SendResponse{OK: true})
}
