package form

import (
	"fmt"
	"html/template"
	"strings"
)

var widgetTmpl = template.Must(template.New("widget").Parse(`<div class="field">
<label for="{{.Name}}">{{.Label}}</label>
{{if eq .Control "textarea" -}}
<textarea id="{{.Name}}" name="{{.Name}}" rows="6">{{.Value}}</textarea>
{{- else if eq .Control "checkbox" -}}
<input type="checkbox" id="{{.Name}}" name="{{.Name}}"{{if .Checked}} checked{{end}}>
{{- else if eq .Control "number" -}}
<input type="number" id="{{.Name}}" name="{{.Name}}" step="any" value="{{.Value}}">
{{- else if eq .Control "datetime" -}}
<input type="datetime-local" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}">
{{- else -}}
<input type="text" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}">
{{- end}}
{{if .Err}}<p class="field-error">{{.Err}}</p>{{end}}
</div>`))

type widgetView struct {
	Widget
	Err string
}

// Render produces the HTML for a set of widgets, with per-field error
// messages shown under their control. The result is safe to embed in a
// page template.
func Render(widgets []Widget, errs FieldErrors) (template.HTML, error) {
	var b strings.Builder
	for _, w := range widgets {
		view := widgetView{Widget: w}
		if errs != nil {
			view.Err = errs[w.Name]
		}
		if err := widgetTmpl.Execute(&b, view); err != nil {
			return "", fmt.Errorf("rendering widget %s: %w", w.Name, err)
		}
		b.WriteByte('\n')
	}
	return template.HTML(b.String()), nil
}
