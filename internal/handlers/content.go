package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/models"
	"github.com/youths4change/webgate/internal/services"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

// ContentHandler serves the site's editorial content: settings, page copy,
// core values, contact channels and the team roster.
type ContentHandler struct {
	content *services.ContentService
}

func NewContentHandler(content *services.ContentService) (*ContentHandler, error) {
	if content == nil {
		return nil, errors.New("content handler: content service is required")
	}
	return &ContentHandler{content: content}, nil
}

// Settings returns the site-wide settings map.
func (h *ContentHandler) Settings(c *gin.Context) {
	settings, err := h.content.Settings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

// PageContent returns the copy blocks for one page.
func (h *ContentHandler) PageContent(c *gin.Context) {
	page := strings.TrimSpace(c.Param("page"))
	if page == "" {
		response.Error(c, apperrors.NewBadRequest("page name is required"))
		return
	}

	content, err := h.content.PageContent(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, content)
}

// CoreValues returns the organisation's core values list.
func (h *ContentHandler) CoreValues(c *gin.Context) {
	values, err := h.content.CoreValues(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, values, &response.Meta{Count: len(values)})
}

// ContactInfo returns the contact channels.
func (h *ContentHandler) ContactInfo(c *gin.Context) {
	info, err := h.content.ContactInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, info, &response.Meta{Count: len(info)})
}

// SocialMedia returns the social media links.
func (h *ContentHandler) SocialMedia(c *gin.Context) {
	links, err := h.content.SocialMedia(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, links, &response.Meta{Count: len(links)})
}

// RegionalOffices returns the regional office directory.
func (h *ContentHandler) RegionalOffices(c *gin.Context) {
	offices, err := h.content.RegionalOffices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, offices, &response.Meta{Count: len(offices)})
}

// TeamMembers returns the team roster.
func (h *ContentHandler) TeamMembers(c *gin.Context) {
	members, err := h.content.TeamMembers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, members, &response.Meta{Count: len(members)})
}

type updateSettingRequest struct {
	Value string `json:"value"`
}

// UpdateSetting writes one settings key through to the backend.
func (h *ContentHandler) UpdateSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		response.Error(c, apperrors.NewBadRequest("setting key is required"))
		return
	}

	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	if err := h.content.UpdateSetting(c.Request.Context(), key, req.Value); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// UpdatePageContent replaces the copy blocks for one page.
func (h *ContentHandler) UpdatePageContent(c *gin.Context) {
	page := strings.TrimSpace(c.Param("page"))
	if page == "" {
		response.Error(c, apperrors.NewBadRequest("page name is required"))
		return
	}

	var content map[string]string
	if err := c.ShouldBindJSON(&content); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	if err := h.content.UpdatePageContent(c.Request.Context(), page, content); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page})
}

// UpdateContactInfo updates one contact channel.
func (h *ContentHandler) UpdateContactInfo(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var info models.ContactInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	if err := h.content.UpdateContactInfo(c.Request.Context(), id, info); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// UpdateTeamMember updates one team roster entry.
func (h *ContentHandler) UpdateTeamMember(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var member models.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	if err := h.content.UpdateTeamMember(c.Request.Context(), id, member); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
