package domain

import "strings"

// Persona identifies one of the fixed expert roles a question can be put to.
type Persona string

const (
	PersonaMedical Persona = "医療専門家"
	PersonaIT      Persona = "IT技術者"
	PersonaCooking Persona = "料理専門家"
	PersonaLegal   Persona = "法律相談"
)

// FallbackPrompt is used for any persona outside the fixed set.
const FallbackPrompt = "あなたは親切で知識豊富なアシスタントです。"

type profile struct {
	prompt      string
	description string
	topic       string
	command     string
}

var personaOrder = []Persona{
	PersonaMedical,
	PersonaIT,
	PersonaCooking,
	PersonaLegal,
}

var profiles = map[Persona]profile{
	PersonaMedical: {
		prompt:      "あなたは経験豊富な医療専門家です。医学的知識に基づいて、正確で分かりやすい回答を提供してください。ただし、診断や治療の推奨は行わず、必要に応じて医療機関への相談を促してください。",
		description: "💊 医学的な質問や健康に関する相談にお答えします",
		topic:       "健康・医学関連",
		command:     "medical",
	},
	PersonaIT: {
		prompt:      "あなたは経験豊富なIT技術者です。プログラミング、システム開発、インフラ構築などの技術的な質問に対して、実践的で具体的な回答を提供してください。コード例やベストプラクティスも含めて説明してください。",
		description: "💻 プログラミングや技術的な問題解決をサポートします",
		topic:       "プログラミング・技術",
		command:     "it",
	},
	PersonaCooking: {
		prompt:      "あなたは料理のプロフェッショナルです。レシピ、調理法、食材の知識、栄養についての質問に対して、実用的で美味しい料理を作るためのアドバイスを提供してください。",
		description: "👨‍🍳 レシピや調理法、食材についてアドバイスします",
		topic:       "レシピ・調理法",
		command:     "cooking",
	},
	PersonaLegal: {
		prompt:      "あなたは法律の専門家です。法的な質問に対して、正確で理解しやすい回答を提供してください。ただし、具体的な法的アドバイスは行わず、必要に応じて専門の法律家への相談を促してください。",
		description: "⚖️ 法律に関する一般的な質問にお答えします",
		topic:       "法的な質問",
		command:     "legal",
	},
}

// Personas returns the fixed personas in display order.
func Personas() []Persona {
	return append([]Persona(nil), personaOrder...)
}

// ParsePersona accepts either the persona identifier or its command slug.
func ParsePersona(raw string) (Persona, bool) {
	raw = strings.TrimSpace(raw)
	if p := Persona(raw); p.Valid() {
		return p, true
	}
	return PersonaByCommand(raw)
}

func PersonaByCommand(cmd string) (Persona, bool) {
	cmd = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(cmd), "/"))
	for _, p := range personaOrder {
		if profiles[p].command == cmd {
			return p, true
		}
	}
	return "", false
}

func (p Persona) Valid() bool {
	_, ok := profiles[p]
	return ok
}

func (p Persona) Label() string {
	return string(p)
}

func (p Persona) Command() string {
	return profiles[p].command
}

func (p Persona) Topic() string {
	return profiles[p].topic
}

// SystemPrompt returns the instruction sent ahead of the user's text.
func SystemPrompt(p Persona) string {
	if prof, ok := profiles[p]; ok {
		return prof.prompt
	}
	return FallbackPrompt
}

// Description is display-only; unknown personas have none.
func Description(p Persona) string {
	return profiles[p].description
}
