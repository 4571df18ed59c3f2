package web

import (
	"embed"
	"html/template"

	"expert-consult/internal/domain"
)

// ValidationMessage is shown when the form is submitted without a question.
const ValidationMessage = "質問内容を入力してから「相談する」ボタンを押してください。"

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type personaView struct {
	Label       string
	Description string
	Topic       string
	Checked     bool
}

// answerView carries either rendered Markdown or, for failures, plain text.
type answerView struct {
	Label  string
	HTML   template.HTML
	Text   string
	Failed bool
}

type pageData struct {
	Personas        []personaView
	Selected        personaView
	Model           string
	Question        string
	ValidationError string
	Answer          *answerView
}

func newPageData(selected domain.Persona, model string) pageData {
	if !selected.Valid() {
		selected = domain.Personas()[0]
	}

	data := pageData{Model: model}
	for _, p := range domain.Personas() {
		view := personaView{
			Label:       p.Label(),
			Description: domain.Description(p),
			Topic:       p.Topic(),
			Checked:     p == selected,
		}
		if view.Checked {
			data.Selected = view
		}
		data.Personas = append(data.Personas, view)
	}
	return data
}
