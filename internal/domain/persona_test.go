package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPrompt_KnownPersonas(t *testing.T) {
	for _, p := range Personas() {
		t.Run(p.Label(), func(t *testing.T) {
			prompt := SystemPrompt(p)
			assert.NotEmpty(t, prompt)
			assert.NotEqual(t, FallbackPrompt, prompt)
			assert.NotEmpty(t, Description(p))
			assert.NotEmpty(t, p.Command())
		})
	}
}

func TestSystemPrompt_Fallback(t *testing.T) {
	for _, p := range []Persona{"", "占い師", "it", "IT技術者 "} {
		assert.Equal(t, FallbackPrompt, SystemPrompt(p), "persona %q", p)
		assert.Empty(t, Description(p))
	}
}

func TestPersonas_Order(t *testing.T) {
	assert.Equal(t, []Persona{PersonaMedical, PersonaIT, PersonaCooking, PersonaLegal}, Personas())

	// callers get a copy
	list := Personas()
	list[0] = "x"
	assert.Equal(t, PersonaMedical, Personas()[0])
}

func TestParsePersona(t *testing.T) {
	cases := []struct {
		in   string
		want Persona
		ok   bool
	}{
		{"IT技術者", PersonaIT, true},
		{" 法律相談 ", PersonaLegal, true},
		{"medical", PersonaMedical, true},
		{"/Cooking", PersonaCooking, true},
		{"doctor", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParsePersona(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestExchange(t *testing.T) {
	msgs := Exchange(PersonaIT, "How do I reverse a list?")
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: SystemPrompt(PersonaIT)}, msgs[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "How do I reverse a list?"}, msgs[1])
}
