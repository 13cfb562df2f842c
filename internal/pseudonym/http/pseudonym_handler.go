// Package http provides HTTP handlers that expose the ID bridge to non-Go consumers.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ecdc/internal/httputil"
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	"github.com/allisson/ecdc/internal/pseudonym/http/dto"
	pseudonymUseCase "github.com/allisson/ecdc/internal/pseudonym/usecase"
	customValidation "github.com/allisson/ecdc/internal/validation"
)

// PseudonymHandler handles HTTP requests for identifier encoding and decoding.
type PseudonymHandler struct {
	bridge pseudonymUseCase.IDBridge
	admins pseudonymDomain.AdminSet
	logger *slog.Logger
}

// NewPseudonymHandler creates a new pseudonym handler. admins is the configured
// ADMIN_IDS set used by the admin endpoints.
func NewPseudonymHandler(
	bridge pseudonymUseCase.IDBridge,
	admins pseudonymDomain.AdminSet,
	logger *slog.Logger,
) *PseudonymHandler {
	return &PseudonymHandler{
		bridge: bridge,
		admins: admins,
		logger: logger,
	}
}

// RegisterRoutes mounts the pseudonym endpoints on group.
func (h *PseudonymHandler) RegisterRoutes(group gin.IRoutes) {
	group.POST("/users/encode", h.EncodeUserHandler)
	group.POST("/users/decode", h.DecodeUserHandler)
	group.POST("/users/normalize", h.NormalizeUserHandler)
	group.POST("/users/identity", h.IdentityHandler)
	group.POST("/chats/encode", h.EncodeChatHandler)
	group.POST("/chats/decode", h.DecodeChatHandler)
	group.POST("/chats/resolve", h.ResolveChatHandler)
	group.POST("/admins/check", h.CheckAdminHandler)
	group.GET("/admins/recipients", h.AdminRecipientsHandler)
}

// bind decodes and validates a JSON body, writing the error response itself.
func (h *PseudonymHandler) bind(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}

// EncodeUserHandler maps a raw user ID to its public identifier.
// POST /v1/users/encode
func (h *PseudonymHandler) EncodeUserHandler(c *gin.Context) {
	var req dto.UserIDRequest
	if !h.bind(c, &req) {
		return
	}

	uid, err := h.bridge.EncodeUser(c.Request.Context(), *req.TID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicUserResponse{UID: uid})
}

// DecodeUserHandler maps a public user identifier back to the raw user ID.
// POST /v1/users/decode
func (h *PseudonymHandler) DecodeUserHandler(c *gin.Context) {
	var req dto.PublicUserRequest
	if !h.bind(c, &req) {
		return
	}

	tid, err := h.bridge.DecodeUser(c.Request.Context(), req.UID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UserIDResponse{TID: tid})
}

// NormalizeUserHandler returns the canonical form of a public user identifier.
// POST /v1/users/normalize
func (h *PseudonymHandler) NormalizeUserHandler(c *gin.Context) {
	var req dto.PublicUserRequest
	if !h.bind(c, &req) {
		return
	}

	uid, err := h.bridge.NormalizeUser(c.Request.Context(), req.UID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicUserResponse{UID: uid})
}

// IdentityHandler returns both forms of a user ID.
// POST /v1/users/identity
func (h *PseudonymHandler) IdentityHandler(c *gin.Context) {
	var req dto.UserIDRequest
	if !h.bind(c, &req) {
		return
	}

	identity, err := h.bridge.BuildIdentity(c.Request.Context(), *req.TID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity))
}

// EncodeChatHandler maps a raw chat ID to its public identifier.
// POST /v1/chats/encode
func (h *PseudonymHandler) EncodeChatHandler(c *gin.Context) {
	var req dto.ChatIDRequest
	if !h.bind(c, &req) {
		return
	}

	ugid, err := h.bridge.EncodeChat(c.Request.Context(), *req.TGID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicChatResponse{UGID: ugid})
}

// DecodeChatHandler maps a public chat identifier back to the raw chat ID.
// POST /v1/chats/decode
func (h *PseudonymHandler) DecodeChatHandler(c *gin.Context) {
	var req dto.PublicChatRequest
	if !h.bind(c, &req) {
		return
	}

	tgid, err := h.bridge.DecodeChat(c.Request.Context(), req.UGID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ChatIDResponse{TGID: tgid})
}

// ResolveChatHandler resolves a configured chat reference in either form.
// POST /v1/chats/resolve
func (h *PseudonymHandler) ResolveChatHandler(c *gin.Context) {
	var req dto.ResolveChatRequest
	if !h.bind(c, &req) {
		return
	}

	tgid, err := h.bridge.ResolveChatReference(c.Request.Context(), req.Reference)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ResolveChatResponse{TGID: tgid})
}

// CheckAdminHandler reports whether a raw user ID belongs to the admin set.
// POST /v1/admins/check
func (h *PseudonymHandler) CheckAdminHandler(c *gin.Context) {
	var req dto.UserIDRequest
	if !h.bind(c, &req) {
		return
	}

	isAdmin := h.bridge.IsAdmin(c.Request.Context(), *req.TID, h.admins)

	c.JSON(http.StatusOK, dto.AdminCheckResponse{IsAdmin: isAdmin})
}

// AdminRecipientsHandler lists raw user IDs for every decodable admin entry.
// GET /v1/admins/recipients
func (h *PseudonymHandler) AdminRecipientsHandler(c *gin.Context) {
	recipients := h.bridge.ResolveAdminRecipients(c.Request.Context(), h.admins)

	c.JSON(http.StatusOK, dto.MapRecipientsToResponse(recipients))
}
