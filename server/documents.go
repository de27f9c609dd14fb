package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/form"
	"github.com/mdrahmanz/curator/schema"
	"github.com/mdrahmanz/curator/store"
)

type collectionCard struct {
	Name  string
	Icon  string
	Count int64
}

type dashboardPage struct {
	Title       string
	Demo        bool
	Collections []collectionCard
}

// handleDashboard lists collections with counts and icons. Count and schema
// lookups fan out per collection; a failed branch degrades to a zero count or
// a placeholder icon instead of failing the page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	m := s.mode(r)
	ctx := r.Context()

	names, err := m.Backend.Schemas.List(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	cards := make([]collectionCard, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		cards[i] = collectionCard{Name: name, Icon: "📄"}
		g.Go(func() error {
			if count, err := m.Backend.Docs.Count(gctx, name); err == nil {
				cards[i].Count = count
			}
			if def, err := m.Backend.Schemas.Get(gctx, name); err == nil && def.Icon != "" {
				cards[i].Icon = def.Icon
			}
			return nil
		})
	}
	_ = g.Wait() // branches never return errors, they degrade

	s.render(w, "dashboard", dashboardPage{Title: "Collections", Demo: m.Demo, Collections: cards})
}

type docRow struct {
	ID    string
	Title string
}

type collectionPage struct {
	Title string
	Demo  bool
	Name  string
	Docs  []docRow
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if store.IsReserved(name) {
		http.NotFound(w, r)
		return
	}
	m := s.mode(r)

	docs, err := m.Backend.Docs.List(r.Context(), name, 50)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	rows := make([]docRow, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, docRow{ID: doc.ID, Title: docTitle(doc)})
	}
	s.render(w, "collection", collectionPage{Title: name, Demo: m.Demo, Name: name, Docs: rows})
}

// docTitle picks a list label: the first string field, or the id.
func docTitle(doc *document.Document) string {
	for _, f := range doc.Fields() {
		if f.Value.Kind() == document.KindString && f.Name != "id" {
			title := f.Value.Str()
			if len(title) > 80 {
				title = title[:80] + "…"
			}
			return title
		}
	}
	return doc.ID
}

type docFormPage struct {
	Title    string
	Demo     bool
	Heading  string
	Action   string
	Inferred bool
	Form     template.HTML
}

// collectionPlan resolves the field plan for a collection: the saved schema
// if there is one, otherwise a schema synthesized from a sampled document.
// The sampled document comes back too on the inference path, so the form
// renderer can consult the sample values; the bool reports inference.
func (s *Server) collectionPlan(r *http.Request, m Mode, name string) ([]schema.PlannedField, *document.Document, bool, error) {
	def, err := m.Backend.Schemas.Get(r.Context(), name)
	if err == nil && !def.IsEmpty() {
		return schema.Plan(def.Source()), nil, false, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, nil, false, err
	}

	sample := s.sampleFor(r, m, name)
	if sample == nil {
		return nil, nil, true, nil
	}
	inferred := schema.Synthesize(name, sample)
	return schema.Plan(inferred.Source()), sample, true, nil
}

// sampleFor fetches the inference specimen. A missing or unreachable sample
// degrades to nil so pages still render with the placeholder schema; the
// store failure is only logged.
func (s *Server) sampleFor(r *http.Request, m Mode, name string) *document.Document {
	sample, err := m.Backend.Docs.Sample(r.Context(), name)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("sampling collection",
				zap.String("collection", name),
				zap.Error(err),
			)
		}
		return nil
	}
	return sample
}

func (s *Server) handleNewDocument(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if store.IsReserved(name) {
		http.NotFound(w, r)
		return
	}
	m := s.mode(r)

	plan, sample, inferred, err := s.collectionPlan(r, m, name)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderDocForm(w, r, m, name, form.PlanCreateForm(plan, sample), nil, inferred, "", "")
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !store.ValidCollectionName(name) {
		http.NotFound(w, r)
		return
	}
	m := s.mode(r)

	plan, sample, inferred, err := s.collectionPlan(r, m, name)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	doc, fieldErrs := form.DecodeSubmission(plan, r.PostForm)
	if fieldErrs != nil {
		widgets := prefill(form.PlanCreateForm(plan, sample), r.PostForm)
		s.renderDocForm(w, r, m, name, widgets, fieldErrs, inferred, "", "")
		return
	}
	if _, err := m.Backend.Docs.Put(r.Context(), name, doc); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/c/"+name, http.StatusSeeOther)
}

func (s *Server) handleEditDocument(w http.ResponseWriter, r *http.Request) {
	name, id := r.PathValue("name"), r.PathValue("id")
	m := s.mode(r)

	doc, err := m.Backend.Docs.Get(r.Context(), name, id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderDocForm(w, r, m, name, form.PlanEditForm(doc), nil, false, id, docTitle(doc))
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	name, id := r.PathValue("name"), r.PathValue("id")
	m := s.mode(r)

	existing, err := m.Backend.Docs.Get(r.Context(), name, id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	plan := form.EditPlan(existing)
	doc, fieldErrs := form.DecodeSubmission(plan, r.PostForm)
	if fieldErrs != nil {
		widgets := prefill(form.PlanEditForm(existing), r.PostForm)
		s.renderDocForm(w, r, m, name, widgets, fieldErrs, false, id, docTitle(existing))
		return
	}
	doc.ID = id
	if _, err := m.Backend.Docs.Put(r.Context(), name, doc); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/c/"+name, http.StatusSeeOther)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	name, id := r.PathValue("name"), r.PathValue("id")
	m := s.mode(r)

	if err := m.Backend.Docs.Delete(r.Context(), name, id); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/c/"+name, http.StatusSeeOther)
}

func (s *Server) renderDocForm(w http.ResponseWriter, r *http.Request, m Mode, name string, widgets []form.Widget, fieldErrs form.FieldErrors, inferred bool, id, docLabel string) {
	html, err := form.Render(widgets, fieldErrs)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	page := docFormPage{
		Title:    name,
		Demo:     m.Demo,
		Heading:  fmt.Sprintf("New %s document", name),
		Action:   "/c/" + name,
		Inferred: inferred,
		Form:     html,
	}
	if id != "" {
		page.Heading = fmt.Sprintf("Edit %s", docLabel)
		page.Action = "/c/" + name + "/" + id
	}
	s.render(w, "docform", page)
}

// prefill copies submitted values back onto widgets so a rejected submission
// re-renders with what the user typed.
func prefill(widgets []form.Widget, values map[string][]string) []form.Widget {
	for i := range widgets {
		vals, ok := values[widgets[i].Name]
		if !ok || len(vals) == 0 {
			if widgets[i].Control == form.ControlCheckbox {
				widgets[i].Checked = false
			}
			continue
		}
		if widgets[i].Control == form.ControlCheckbox {
			widgets[i].Checked = vals[0] == "on" || vals[0] == "true"
			continue
		}
		widgets[i].Value = vals[0]
	}
	return widgets
}
