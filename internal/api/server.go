package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/chatfmt/internal/chattemplate"
	"github.com/samcharles93/chatfmt/internal/logger"
	"github.com/samcharles93/chatfmt/internal/reasoning"
	"github.com/samcharles93/chatfmt/internal/version"
)

const (
	DefaultPlayerName = "user"
	DefaultAIName     = "assistant"
)

// Config holds server defaults. Zero values fall back to the package defaults.
type Config struct {
	PlayerName string
	AIName     string
	Logger     logger.Logger
}

type Server struct {
	registry *chattemplate.Registry
	store    *PromptStore
	log      logger.Logger
	player   string
	ai       string
	clock    func() time.Time
}

func NewServer(registry *chattemplate.Registry, store *PromptStore, cfg Config) *Server {
	if registry == nil {
		registry = chattemplate.Default()
	}
	if store == nil {
		store = NewPromptStore(DefaultStoreCapacity)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		registry: registry,
		store:    store,
		log:      log,
		player:   orDefault(cfg.PlayerName, DefaultPlayerName),
		ai:       orDefault(cfg.AIName, DefaultAIName),
		clock:    time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/templates", s.handleListTemplates)
	e.GET("/v1/templates/:name", s.handleGetTemplate)
	e.POST("/v1/templates/resolve", s.handleResolve)

	e.POST("/v1/prompt", s.handleCreatePrompt)
	e.GET("/v1/prompt/:id", s.handleGetPrompt)
	e.DELETE("/v1/prompt/:id", s.handleDeletePrompt)

	e.POST("/v1/postprocess", s.handlePostprocess)
	e.GET("/v1/version", s.handleVersion)
}

func (s *Server) handleListTemplates(c *echo.Context) error {
	names := s.registry.Names()
	out := TemplateList{
		Templates: make([]TemplateInfo, 0, len(names)),
		Default:   s.registry.Fallback(),
	}
	for _, name := range names {
		v, err := s.registry.Lookup(name)
		if err != nil {
			continue
		}
		out.Templates = append(out.Templates, templateInfo(v))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetTemplate(c *echo.Context) error {
	v, err := s.registry.Lookup(c.Param("name"))
	if err != nil {
		return s.writeErr(c, err)
	}
	info := templateInfo(v)
	info.Stop = v.StopSequences(s.player, s.ai)
	return c.JSON(http.StatusOK, info)
}

func (s *Server) handleResolve(c *echo.Context) error {
	req, err := decodeJSON[ResolveRequest](c.Request().Body)
	if err != nil {
		return s.writeErr(c, err)
	}
	res := s.registry.Resolve(chattemplate.Source{
		Template:  req.Template,
		ModelName: req.ModelName,
		Path:      req.Filename,
	})
	return c.JSON(http.StatusOK, ResolveResponse{Name: res.Name, Source: string(res.Source)})
}

func (s *Server) handleCreatePrompt(c *echo.Context) error {
	req, err := decodeJSON[PromptRequest](c.Request().Body)
	if err != nil {
		return s.writeErr(c, err)
	}
	if len(req.Messages) == 0 {
		return s.writeErr(c, newInvalidParam("messages", "messages is required and must not be empty"))
	}
	for i, m := range req.Messages {
		if m.Role == "" {
			return s.writeErr(c, newInvalidParam("messages", "messages["+strconv.Itoa(i)+"].role is required"))
		}
	}

	name := req.Template
	if name == "" {
		name = s.registry.Resolve(chattemplate.Source{ModelName: req.Model}).Name
	}
	v, err := s.registry.Lookup(name)
	if err != nil {
		return s.writeErr(c, err)
	}

	player := orDefault(req.PlayerName, s.player)
	ai := orDefault(req.AIName, s.ai)
	addPrefix := req.AddGenerationPrompt == nil || *req.AddGenerationPrompt
	prompt, err := v.ComputePrompt(req.Messages, player, ai, addPrefix)
	if err != nil {
		return s.writeErr(c, err)
	}

	resp := s.store.Put(PromptResponse{
		CreatedAt: s.clock().Unix(),
		Template:  v.Name,
		Prompt:    prompt,
		Stop:      v.StopSequences(player, ai),
	})
	s.log.Debug("rendered prompt", "id", resp.ID, "template", v.Name, "messages", len(req.Messages))
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetPrompt(c *echo.Context) error {
	resp, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "prompt not found")
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeletePrompt(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "prompt not found")
	}
	return c.JSON(http.StatusOK, DeletePromptResponse{ID: id, Object: "prompt.deleted", Deleted: true})
}

func (s *Server) handlePostprocess(c *echo.Context) error {
	req, err := decodeJSON[PostprocessRequest](c.Request().Body)
	if err != nil {
		return s.writeErr(c, err)
	}
	if req.Template == "" {
		return s.writeErr(c, newInvalidParam("template", "template is required"))
	}
	v, err := s.registry.Lookup(req.Template)
	if err != nil {
		return s.writeErr(c, err)
	}

	out := Postprocess(v, req.Text, orDefault(req.PlayerName, s.player), orDefault(req.AIName, s.ai), req.InReasoning)
	return c.JSON(http.StatusOK, out)
}

// Postprocess cuts generated text at the first stop sequence of v and, for
// thinking-mode variants or when inReasoning is set, separates the reasoning.
func Postprocess(v *chattemplate.Variant, text, playerName, aiName string, inReasoning bool) PostprocessResponse {
	text, stopped := chattemplate.TruncateAtStop(text, v.StopSequences(playerName, aiName))
	out := PostprocessResponse{Content: text, Stopped: stopped}
	switch {
	case inReasoning:
		split := reasoning.SplitOpen(text)
		out.Content, out.Reasoning = split.Content, split.Reasoning
	case v.HasThinkingMode():
		split := reasoning.SplitRaw(text)
		out.Content, out.Reasoning = split.Content, split.Reasoning
	}
	return out
}

func (s *Server) handleVersion(c *echo.Context) error {
	info := version.Resolve()
	return c.JSON(http.StatusOK, VersionResponse{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildTime: info.BuildTime,
	})
}

func (s *Server) writeErr(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), errorParam(err), "")
	case errors.Is(err, chattemplate.ErrUnknownVariant):
		return writeError(c, http.StatusNotFound, "not_found_error", err.Error(), "template", "unknown_template")
	case errors.Is(err, chattemplate.ErrNoMessages):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "messages", "")
	default:
		s.log.Error("request failed", "path", c.Request().URL.Path, "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}
}

func templateInfo(v *chattemplate.Variant) TemplateInfo {
	return TemplateInfo{
		Name:                  v.Name,
		Description:           v.Description,
		SystemPromptSupported: v.SystemPromptSupported(),
		ThinkingMode:          v.HasThinkingMode(),
	}
}
