package ai

import (
	"strings"
	"toni/errors"
)

// Role selects the per-role default model.
type Role string

const (
	RoleSecretary Role = "secretary"
	RoleExpert    Role = "expert"
)

// Target is the resolved endpoint and model for one call.
type Target struct {
	Endpoint string
	Model    string
}

// Override carries the per-call model_api_url / model_code request fields.
type Override struct {
	ModelAPIURL string
	ModelCode   string
}

// Defaults is the process-wide part of the resolution.
type Defaults struct {
	// Endpoint is a full chat completion URL.
	Endpoint string
	// BaseURL is an OpenAI-compatible API root.
	BaseURL        string
	ModelCode      string
	SecretaryModel string
	ExpertModel    string
}

const (
	fallbackSecretaryModel = "gpt-4o-mini"
	fallbackExpertModel    = "gpt-4o"
	completionsPath        = "/chat/completions"
)

// Resolve picks the endpoint and model for a call. Explicit per-call values win,
// then process configuration, then the built-in model defaults. Both the
// secretary and the experts resolve through here.
func Resolve(o Override, d Defaults, role Role) (Target, error) {
	var endpoint string
	switch {
	case strings.TrimSpace(o.ModelAPIURL) != "":
		endpoint = CompletionsURL(o.ModelAPIURL)
	case strings.TrimSpace(d.Endpoint) != "":
		endpoint = strings.TrimSpace(d.Endpoint)
	case strings.TrimSpace(d.BaseURL) != "":
		endpoint = CompletionsURL(d.BaseURL)
	default:
		return Target{}, errors.ErrEndpointNotConfigured
	}
	return Target{Endpoint: endpoint, Model: resolveModel(o, d, role)}, nil
}

func resolveModel(o Override, d Defaults, role Role) string {
	for _, m := range []string{o.ModelCode, d.ModelCode} {
		if m = strings.TrimSpace(m); m != "" {
			return m
		}
	}
	if role == RoleSecretary {
		if d.SecretaryModel != "" {
			return d.SecretaryModel
		}
		return fallbackSecretaryModel
	}
	if d.ExpertModel != "" {
		return d.ExpertModel
	}
	return fallbackExpertModel
}

// CompletionsURL turns an API root into its chat completion endpoint.
// "https://host/" and "https://host/v1" both become "https://host/v1/chat/completions";
// a URL already ending in /chat/completions is kept.
func CompletionsURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	switch {
	case strings.HasSuffix(base, completionsPath):
		return base
	case strings.HasSuffix(base, "/v1"):
		return base + completionsPath
	default:
		return base + "/v1" + completionsPath
	}
}
