package server

import (
	"errors"
	"net/http"

	"github.com/mdrahmanz/curator/schema"
	"github.com/mdrahmanz/curator/store"
)

type schemaPage struct {
	Title  string
	Demo   bool
	Name   string
	Icon   string
	Source string
	Error  string
}

// handleSchemaPage shows the editable definition source. A collection with no
// saved schema starts from one synthesized off a sampled document, or an
// empty skeleton when the collection has no documents either.
func (s *Server) handleSchemaPage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if store.IsReserved(name) {
		http.NotFound(w, r)
		return
	}
	m := s.mode(r)

	def, err := m.Backend.Schemas.Get(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		def = schema.Synthesize(name, s.sampleFor(r, m, name))
	} else if err != nil {
		s.serverError(w, r, err)
		return
	}
	def.Collection = name

	s.render(w, "schema", schemaPage{
		Title:  name + " schema",
		Demo:   m.Demo,
		Name:   name,
		Icon:   def.Icon,
		Source: def.Source(),
	})
}

func (s *Server) handleSchemaSave(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !store.ValidCollectionName(name) {
		http.NotFound(w, r)
		return
	}
	m := s.mode(r)

	source := r.FormValue("source")
	icon := r.FormValue("icon")

	def := schema.ParseSource(source)
	def.Collection = name
	if err := def.Validate(); err != nil {
		s.render(w, "schema", schemaPage{
			Title:  name + " schema",
			Demo:   m.Demo,
			Name:   name,
			Icon:   icon,
			Source: source,
			Error:  err.Error(),
		})
		return
	}

	if err := m.Backend.Schemas.Put(r.Context(), name, def.Source(), icon); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/c/"+name+"/schema", http.StatusSeeOther)
}
