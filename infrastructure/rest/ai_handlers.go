package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"toni/ai"
	"toni/domain"
	"toni/domain/event"
	"toni/domain/expert"
	"toni/images"
	"toni/services"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	secretaryMessages = tagMessages{
		"required": "Missing required field: text",
		"b64image": invalidImageMessage,
	}
	expertMessages = tagMessages{
		"required": "Missing required fields: user_context and image",
		"b64image": invalidImageMessage,
	}
)

type secretaryRequest struct {
	Text           string `json:"text" validate:"required"`
	Image          string `json:"image" validate:"omitempty,b64image"`
	SecretaryStyle string `json:"secretary_style"`
	SessionID      string `json:"session_id"`
	DeviceIP       string `json:"device_ip"`
	ModelAPIURL    string `json:"model_api_url"`
	ModelCode      string `json:"model_code"`
}

type secretaryResponse struct {
	Reply        string                 `json:"reply"`
	Expert       string                 `json:"expert"`
	ExpertID     int                    `json:"expert_id"`
	CameraAction domain.CameraDirective `json:"camera_action"`
	BurstCount   int                    `json:"burst_count"`
	SessionID    string                 `json:"session_id"`
}

type expertRequest struct {
	UserContext      string `json:"user_context" validate:"required"`
	SecretaryContext string `json:"secretary_context"`
	Image            string `json:"image" validate:"required,b64image"`
	// PicRequire is a client capture hint; it does not change the answer.
	PicRequire  any             `json:"pic_require"`
	Expert      string          `json:"expert"`
	BurstImages json.RawMessage `json:"burst_images"`
	SessionID   string          `json:"session_id"`
	ModelAPIURL string          `json:"model_api_url"`
	ModelCode   string          `json:"model_code"`
}

// newSessionID mints session_<unix ms>_<9 chars>.
func newSessionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}

func (s *Server) handleSecretary(w http.ResponseWriter, r *http.Request) {
	var body secretaryRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		rejectInvalid(w, err, secretaryMessages)
		return
	}

	start := s.now()
	sessionID := body.SessionID
	if sessionID == "" {
		sessionID = newSessionID(start)
	}
	s.deps.Publisher.Publish(event.SessionTouched{
		SessionID: sessionID,
		DeviceIP:  lo.EmptyableToPtr(body.DeviceIP),
		At:        start,
	})

	var img *images.Image
	if body.Image != "" {
		decoded, err := s.decodeImage(body.Image)
		if err != nil {
			writeError(w, http.StatusBadRequest, invalidImageMessage)
			return
		}
		img = &decoded
	}

	result, err := s.deps.Secretary.Classify(r.Context(), services.ClassifyRequest{
		Text:     body.Text,
		Image:    img,
		Persona:  body.SecretaryStyle,
		Override: ai.Override{ModelAPIURL: body.ModelAPIURL, ModelCode: body.ModelCode},
	})
	if err != nil {
		s.log.Error("Secretary route error", "session_id", sessionID, "error", err)
		writeFailure(w, "Failed to process secretary AI request", err)
		return
	}
	elapsed := s.now().Sub(start).Milliseconds()

	var imageSize *int
	if img != nil {
		imageSize = lo.ToPtr(img.Size)
	}
	camera := result.CameraDirective
	s.deps.Publisher.Publish(event.MessageRecorded{Message: domain.Message{
		SessionID: sessionID,
		Type:      domain.MessageUser,
		Content:   body.Text,
		ImageSize: imageSize,
	}})
	s.deps.Publisher.Publish(event.MessageRecorded{Message: domain.Message{
		SessionID:       sessionID,
		Type:            domain.MessageSecretary,
		Content:         result.Reply,
		ExpertName:      lo.ToPtr(result.ExpertName),
		CameraDirective: &camera,
	}})
	s.deps.Publisher.Publish(event.AIRequestRecorded{Entry: domain.AIRequestLog{
		SessionID:      lo.ToPtr(sessionID),
		RequestType:    domain.RequestSecretary,
		UserText:       body.Text,
		ImageSize:      imageSize,
		ExpertName:     lo.ToPtr(result.ExpertName),
		ResponseTimeMs: lo.ToPtr(elapsed),
	}})

	writeJSON(w, http.StatusOK, secretaryResponse{
		Reply:        result.Reply,
		Expert:       result.ExpertName,
		ExpertID:     result.ExpertID,
		CameraAction: result.CameraDirective,
		BurstCount:   result.BurstCount,
		SessionID:    sessionID,
	})
}

func (s *Server) handleExpert(w http.ResponseWriter, r *http.Request) {
	var body expertRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		rejectInvalid(w, err, expertMessages)
		return
	}

	img, err := s.decodeImage(body.Image)
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidImageMessage)
		return
	}
	expertName := lo.Ternary(body.Expert != "", body.Expert, expert.DefaultName)

	start := s.now()
	reply, err := s.deps.Expert.Respond(r.Context(), services.RespondRequest{
		UserText:      body.UserContext,
		SecretaryText: body.SecretaryContext,
		Image:         img,
		ExpertName:    expertName,
		Burst:         burstImages(body.BurstImages),
		Override:      ai.Override{ModelAPIURL: body.ModelAPIURL, ModelCode: body.ModelCode},
	})
	if err != nil {
		s.log.Error("Expert route error", "expert", expertName, "error", err)
		writeFailure(w, "Failed to process expert AI request", err)
		return
	}
	elapsed := s.now().Sub(start).Milliseconds()

	if body.SessionID != "" {
		s.deps.Publisher.Publish(event.MessageRecorded{Message: domain.Message{
			SessionID:  body.SessionID,
			Type:       domain.MessageExpert,
			Content:    reply.Reply,
			ExpertName: lo.ToPtr(expertName),
			ImageSize:  lo.ToPtr(img.Size),
		}})
		s.deps.Publisher.Publish(event.AIRequestRecorded{Entry: domain.AIRequestLog{
			SessionID:      lo.ToPtr(body.SessionID),
			RequestType:    domain.RequestExpert,
			UserText:       body.UserContext,
			ImageSize:      lo.ToPtr(img.Size),
			ExpertName:     lo.ToPtr(expertName),
			ResponseTimeMs: lo.ToPtr(elapsed),
		}})
	}

	writeJSON(w, http.StatusOK, reply)
}

// decodeImage accepts any base64 payload; formats the sniffer doesn't know
// are forwarded as is.
func (s *Server) decodeImage(raw string) (images.Image, error) {
	img, err := images.Decode(raw)
	if err != nil {
		return images.Image{}, err
	}
	if !img.MIME.IsPicture() {
		s.log.Debug("Image payload is not a known picture format", "size", img.Size)
	}
	return img, nil
}

// burstImages keeps the string entries that decode as images. Anything
// that is not an array yields no burst.
func burstImages(raw json.RawMessage) []images.Image {
	var entries []any
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return nil
	}
	return lo.FilterMap(entries, func(entry any, _ int) (images.Image, bool) {
		str, ok := entry.(string)
		if !ok || str == "" {
			return images.Image{}, false
		}
		img, err := images.Decode(str)
		return img, err == nil
	})
}
