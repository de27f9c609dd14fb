package schema

// PlannedField is one renderer-ready entry of a field plan: the field name
// and the literal type token declared in the definition source. The planner
// echoes the token as written; interpreting it is the renderer's job.
type PlannedField struct {
	Name string
	Kind FieldType
}

// Plan parses a definition source into the ordered field plan used to build a
// creation form. The id field is dropped: it is system-assigned and never
// user-editable. A source with no recognizable field declarations plans to an
// empty list.
func Plan(source string) []PlannedField {
	def := ParseSource(source)
	plan := make([]PlannedField, 0, len(def.Fields))
	for _, f := range def.Fields {
		if f.Name == "id" {
			continue
		}
		plan = append(plan, PlannedField{Name: f.Name, Kind: f.Type})
	}
	return plan
}
