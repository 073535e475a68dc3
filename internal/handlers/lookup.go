package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alperakbas/emailscope/internal/models"
	"github.com/alperakbas/emailscope/internal/services"
	"github.com/alperakbas/emailscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

type LookupHandler struct {
	resolverService *services.ResolverService
	// fallbackToken is used when the request carries no Authorization header.
	fallbackToken string
}

func NewLookupHandler(resolverService *services.ResolverService, fallbackToken string) *LookupHandler {
	return &LookupHandler{
		resolverService: resolverService,
		fallbackToken:   fallbackToken,
	}
}

// Lookup handles GET /api/v1/lookup. Exactly one of the username and id
// query parameters must be set; repository optionally overrides repository
// auto-selection.
func (h *LookupHandler) Lookup(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.resolverService.Resolve(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.WithError(err).Errorf("lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream lookup failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *LookupHandler) parseRequest(c *gin.Context) (*models.LookupRequest, error) {
	username := c.Query("username")
	idParam := c.Query("id")

	if (username == "") == (idParam == "") {
		return nil, errors.New("exactly one of username and id is required")
	}

	var req *models.LookupRequest
	if username != "" {
		req = models.NewUsernameLookup(username)
	} else {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return nil, errors.New("id must be an integer")
		}
		req = models.NewIDLookup(id)
	}

	req.Repository = c.Query("repository")
	req.Token = h.bearerToken(c)
	return req, nil
}

func (h *LookupHandler) bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
		return token
	}
	return h.fallbackToken
}
