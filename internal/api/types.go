package api

import "github.com/samcharles93/chatfmt/internal/chattemplate"

type TemplateInfo struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	SystemPromptSupported bool     `json:"system_prompt_supported"`
	ThinkingMode          bool     `json:"thinking_mode"`
	Stop                  []string `json:"stop,omitempty"`
}

type TemplateList struct {
	Templates []TemplateInfo `json:"templates"`
	Default   string         `json:"default"`
}

type ResolveRequest struct {
	Template  string `json:"template,omitempty"`
	ModelName string `json:"model_name,omitempty"`
	Filename  string `json:"filename,omitempty"`
}

type ResolveResponse struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// PromptRequest renders a message list. When Template is empty the variant
// is resolved from Model, falling back to the registry default.
type PromptRequest struct {
	Template            string                 `json:"template,omitempty"`
	Model               string                 `json:"model,omitempty"`
	Messages            []chattemplate.Message `json:"messages"`
	PlayerName          string                 `json:"player_name,omitempty"`
	AIName              string                 `json:"ai_name,omitempty"`
	AddGenerationPrompt *bool                  `json:"add_generation_prompt,omitempty"`
}

type PromptResponse struct {
	ID        string   `json:"id"`
	Object    string   `json:"object"`
	CreatedAt int64    `json:"created_at"`
	Template  string   `json:"template"`
	Prompt    string   `json:"prompt"`
	Stop      []string `json:"stop"`
}

type DeletePromptResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type PostprocessRequest struct {
	Template    string `json:"template"`
	Text        string `json:"text"`
	PlayerName  string `json:"player_name,omitempty"`
	AIName      string `json:"ai_name,omitempty"`
	InReasoning bool   `json:"in_reasoning,omitempty"`
}

type PostprocessResponse struct {
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
	Stopped   bool   `json:"stopped"`
}

type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
