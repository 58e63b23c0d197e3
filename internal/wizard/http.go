package wizard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/403errors/ideaflowai/internal/auth"
)

type Handler struct {
	svc *Service
}

// Register wires the wizard routes. generate is the rate-limit middleware
// applied to every route that issues a model call.
func Register(rg *gin.RouterGroup, svc *Service, generate gin.HandlerFunc) {
	h := &Handler{svc: svc}

	rg.POST("", h.start)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.abandon)

	rg.POST("/:id/idea", generate, h.submitIdea)
	rg.POST("/:id/questions", generate, h.questions)
	rg.POST("/:id/answers", h.submitAnswers)
	rg.POST("/:id/addons", h.submitAddons)
	rg.POST("/:id/techstack/recommend", generate, h.recommendStacks)
	rg.POST("/:id/techstack", h.selectTechStack)
	rg.POST("/:id/summary", generate, h.generateSummary)
	rg.POST("/:id/name", h.setName)
	rg.POST("/:id/name/generate", generate, h.regenerateName)
	rg.POST("/:id/setup", generate, h.generateSetup)
	rg.POST("/:id/save", generate, h.save)
}

func (h *Handler) start(c *gin.Context) {
	sess, err := h.svc.Start(c.Request.Context(), auth.UserUID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": sess})
}

func (h *Handler) get(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) abandon(c *gin.Context) {
	if err := h.svc.Abandon(c.Request.Context(), auth.UserUID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type ideaReq struct {
	Input string `json:"input"`
}

func (h *Handler) submitIdea(c *gin.Context) {
	var req ideaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sess, err := h.svc.SubmitIdea(c.Request.Context(), auth.UserUID(c), c.Param("id"), req.Input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) questions(c *gin.Context) {
	questions, sess, err := h.svc.Questions(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "questions": questions, "session": sess})
}

type answersReq struct {
	Answers map[string]string `json:"answers"`
}

func (h *Handler) submitAnswers(c *gin.Context) {
	var req answersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sess, err := h.svc.SubmitAnswers(c.Request.Context(), auth.UserUID(c), c.Param("id"), req.Answers)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) submitAddons(c *gin.Context) {
	var req Addons
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sess, err := h.svc.SubmitAddons(c.Request.Context(), auth.UserUID(c), c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) recommendStacks(c *gin.Context) {
	stacks, err := h.svc.RecommendStacks(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tech_stacks": stacks})
}

type techStackReq struct {
	Stack string `json:"stack"`
	Skip  bool   `json:"skip"`
}

func (h *Handler) selectTechStack(c *gin.Context) {
	var req techStackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !req.Skip && req.Stack == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "stack or skip required"})
		return
	}

	stack := req.Stack
	if req.Skip {
		stack = ""
	}

	sess, err := h.svc.SelectTechStack(c.Request.Context(), auth.UserUID(c), c.Param("id"), stack)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) generateSummary(c *gin.Context) {
	sess, err := h.svc.GenerateSummary(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

type nameReq struct {
	Name string `json:"name"`
}

func (h *Handler) setName(c *gin.Context) {
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sess, err := h.svc.SetProjectName(c.Request.Context(), auth.UserUID(c), c.Param("id"), req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) regenerateName(c *gin.Context) {
	sess, err := h.svc.RegenerateName(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) generateSetup(c *gin.Context) {
	sess, err := h.svc.GenerateSetup(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

func (h *Handler) save(c *gin.Context) {
	projectID, err := h.svc.SaveProject(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project_id": projectID})
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
	case errors.Is(err, ErrStepMismatch):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrGeneration):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
