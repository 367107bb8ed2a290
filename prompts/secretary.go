package prompts

import (
	"fmt"
	"strings"
	"text/template"
	"toni/domain"
	"toni/domain/expert"
)

// CaptureOnlyInput is what the client sends when the user pressed the shutter
// without saying anything.
const CaptureOnlyInput = "[用户没有说话，但按下了拍摄按钮，想让AI帮忙看看这张图片]"

// WideAngleTriggers are the phrases the model is told to map to a wide capture.
var WideAngleTriggers = []string{"整体", "这片", "全景", "全部", "整个", "全貌", "大范围", "周围", "环境"}

var secretaryTemplate = template.Must(template.ParseFS(assets, "templates/secretary.tmpl"))

type secretaryView struct {
	Persona      Persona
	Menu         string
	CaptureOnly  string
	WideTriggers string
	MaxBurst     int
}

// SecretarySystemPrompt renders the routing prompt for the given persona.
func SecretarySystemPrompt(personaName string) string {
	quoted := make([]string, len(WideAngleTriggers))
	for i, t := range WideAngleTriggers {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	view := secretaryView{
		Persona:      PersonaFor(personaName),
		Menu:         expert.MenuText(),
		CaptureOnly:  CaptureOnlyInput,
		WideTriggers: strings.Join(quoted, ", "),
		MaxBurst:     domain.MaxBurstCount,
	}
	var sb strings.Builder
	if err := secretaryTemplate.Execute(&sb, view); err != nil {
		// The view is fully static; a failure here is a broken template.
		panic(fmt.Sprintf("render secretary prompt: %v", err))
	}
	return sb.String()
}
