package projects

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/403errors/ideaflowai/internal/auth"
	"github.com/403errors/ideaflowai/internal/flows"
	"github.com/403errors/ideaflowai/internal/plan"
)

// Store is what the handlers need from the repository. Tests use a fake.
type Store interface {
	List(ctx context.Context, ownerID string) ([]Project, error)
	Get(ctx context.Context, id, ownerID string) (*Project, error)
	Delete(ctx context.Context, id, ownerID string) error
	ReplaceFeatures(ctx context.Context, id, ownerID string, features []Feature) error
}

// Generator is the slice of the flow service used for per-project
// regeneration.
type Generator interface {
	ExtractFeatures(ctx context.Context, in flows.ExtractFeaturesInput) (flows.ExtractFeaturesOutput, error)
	GenerateFeaturePrompt(ctx context.Context, in flows.FeaturePromptInput) (flows.FeaturePromptOutput, error)
	GenerateCode(ctx context.Context, in flows.GenerateCodeInput) (flows.GenerateCodeOutput, error)
}

type Handler struct {
	store Store
	gen   Generator
}

// Register wires the project routes. generate is the rate-limit middleware
// for routes that issue model calls.
func Register(rg *gin.RouterGroup, store Store, gen Generator, generate gin.HandlerFunc) {
	h := &Handler{store: store, gen: gen}

	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/features", generate, h.reinitFeatures)
	rg.POST("/:id/features/prompt", generate, h.featurePrompt)
	rg.POST("/:id/features/code", generate, h.featureCode)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context(), auth.UserUID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.store.Get(c.Request.Context(), c.Param("id"), auth.UserUID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id"), auth.UserUID(c)); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// reinitFeatures re-runs feature extraction over the stored setup prompt and
// replaces the feature sequence wholesale. Prompts generated for the old
// features are implicitly stale; they are never stored, so nothing needs
// migrating.
func (h *Handler) reinitFeatures(c *gin.Context) {
	userID := auth.UserUID(c)

	p, err := h.store.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	section, err := plan.KeyFeaturesSection(p.SetupPrompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	extracted, err := h.gen.ExtractFeatures(c.Request.Context(), flows.ExtractFeaturesInput{SetupPrompt: section})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	features := make([]Feature, 0, len(extracted.Features))
	for _, f := range extracted.Features {
		features = append(features, Feature{Title: f.Title, Description: f.Description})
	}

	if err := h.store.ReplaceFeatures(c.Request.Context(), p.ID, userID, features); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "features": features})
}

type featureReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) featurePrompt(c *gin.Context) {
	var req featureReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.store.Get(c.Request.Context(), c.Param("id"), auth.UserUID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}

	out, err := h.gen.GenerateFeaturePrompt(c.Request.Context(), flows.FeaturePromptInput{
		SetupPrompt:        p.SetupPrompt,
		FileStructure:      p.FileStructure,
		FeatureTitle:       req.Title,
		FeatureDescription: req.Description,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "feature_prompt": out.FeaturePrompt})
}

func (h *Handler) featureCode(c *gin.Context) {
	var req featureReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.store.Get(c.Request.Context(), c.Param("id"), auth.UserUID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}

	out, err := h.gen.GenerateCode(c.Request.Context(), flows.GenerateCodeInput{
		SetupPrompt:        p.SetupPrompt,
		FeatureTitle:       req.Title,
		FeatureDescription: req.Description,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "files": out.Files})
}

func (h *Handler) respondErr(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}
