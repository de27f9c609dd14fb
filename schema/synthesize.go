package schema

import (
	"fmt"

	"github.com/mdrahmanz/curator/document"
)

// Synthesize infers a schema definition from one sample document. A nil or
// fieldless sample produces a placeholder definition with zero fields, which
// callers must detect (IsEmpty) before treating the result as usable.
//
// Unlike the field planner, synthesis includes the id field when the sample
// carries one: the definition documents the full record shape.
func Synthesize(collection string, sample *document.Document) Definition {
	def := Definition{Collection: collection}

	if sample == nil || sample.Len() == 0 {
		def.Note = fmt.Sprintf("no sample document available for %s; add fields by hand or save a document first", collection)
		return def
	}

	if sample.ID != "" {
		def.Fields = append(def.Fields, FieldDef{Name: "id", Type: FieldString})
	}
	for _, f := range sample.Fields() {
		def.Fields = append(def.Fields, FieldDef{
			Name: f.Name,
			Type: Classify(f.Value),
		})
	}
	return def
}
