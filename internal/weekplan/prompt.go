package weekplan

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/system_prompt.md
var systemPrompt string

//go:embed prompts/user_prompt.md
var userPrompt string

var promptFuncs = template.FuncMap{"join": strings.Join}

var (
	systemTmpl = template.Must(template.New("system").Parse(systemPrompt))
	userTmpl   = template.Must(template.New("user").Funcs(promptFuncs).Parse(userPrompt))
)

// weekOrder lists the days of a week that starts on Monday.
var weekOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Prompts holds the two strings sent to a backend.
type Prompts struct {
	SystemInstruction string
	UserPrompt        string
}

type promptData struct {
	DateContext   string
	Goal          string
	RemainingDays []string
	LastDay       bool
	Freeform      bool
}

// BuildPrompts renders the system instruction and user prompt.
// dateContext must already be resolved in the user's timezone. When freeform
// is set the prompt also spells out the JSON shape, because the target
// backend does not enforce a schema.
func BuildPrompts(dateContext, goal string, freeform bool) (Prompts, error) {
	days := RemainingDays(dateContext)
	data := promptData{
		DateContext:   dateContext,
		Goal:          goal,
		RemainingDays: days,
		LastDay:       len(days) == 1,
		Freeform:      freeform,
	}

	system, err := render(systemTmpl, data)
	if err != nil {
		return Prompts{}, err
	}
	user, err := render(userTmpl, data)
	if err != nil {
		return Prompts{}, err
	}

	return Prompts{SystemInstruction: system, UserPrompt: user}, nil
}

// RemainingDays returns today through Sunday when dateContext starts with an
// English weekday name, and nil otherwise.
func RemainingDays(dateContext string) []string {
	first, _, _ := strings.Cut(strings.TrimSpace(dateContext), " ")
	first = strings.TrimRight(first, ",")
	for i, day := range weekOrder {
		if strings.EqualFold(first, day) {
			return append([]string(nil), weekOrder[i:]...)
		}
	}
	return nil
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
