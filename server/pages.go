package server

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

const headerHTML = `{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - Curator Studio</title>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-slate-50 text-slate-900">
<nav class="bg-white border-b border-slate-200 px-6 py-3 flex items-center gap-6">
  <a href="/" class="font-bold text-lg">🗂️ Curator</a>
  <a href="/" class="text-slate-600 hover:text-slate-900">Collections</a>
  <a href="/files" class="text-slate-600 hover:text-slate-900">Files</a>
  <a href="/users" class="text-slate-600 hover:text-slate-900">Users</a>
  <a href="/analytics" class="text-slate-600 hover:text-slate-900">Analytics</a>
  <form method="POST" action="/mode" class="ml-auto">
    {{if .Demo}}
    <input type="hidden" name="mode" value="live">
    <button class="text-xs px-3 py-1 rounded-full bg-amber-100 text-amber-800">demo mode · switch to live</button>
    {{else}}
    <input type="hidden" name="mode" value="demo">
    <button class="text-xs px-3 py-1 rounded-full bg-emerald-100 text-emerald-800">live mode · switch to demo</button>
    {{end}}
  </form>
</nav>
<main class="max-w-5xl mx-auto p-6">{{end}}`

const footerHTML = `{{define "footer"}}</main>
</body>
</html>{{end}}`

const loginHTML = `{{define "login"}}{{template "header" .}}
<div class="max-w-sm mx-auto mt-16 bg-white rounded-lg shadow p-6">
  <h1 class="text-xl font-bold mb-4">Sign in</h1>
  {{if .Error}}<p class="text-red-600 text-sm mb-3">{{.Error}}</p>{{end}}
  <form method="POST" action="/login" class="space-y-3">
    <input type="email" name="email" placeholder="Email" class="w-full border rounded px-3 py-2">
    <input type="password" name="password" placeholder="Password" class="w-full border rounded px-3 py-2">
    <button class="w-full bg-slate-900 text-white rounded py-2">Sign in</button>
  </form>
</div>
{{template "footer" .}}{{end}}`

const dashboardHTML = `{{define "dashboard"}}{{template "header" .}}
<h1 class="text-2xl font-bold mb-6">Collections</h1>
{{if not .Collections}}<p class="text-slate-500">No collections yet. Create a document from the CLI or save a schema to get started.</p>{{end}}
<div class="grid grid-cols-1 md:grid-cols-3 gap-4">
{{range .Collections}}
  <a href="/c/{{.Name}}" class="bg-white rounded-lg shadow p-4 hover:shadow-md">
    <div class="text-2xl">{{.Icon}}</div>
    <div class="font-semibold mt-1">{{.Name}}</div>
    <div class="text-sm text-slate-500">{{.Count}} documents</div>
  </a>
{{end}}
</div>
{{template "footer" .}}{{end}}`

const collectionHTML = `{{define "collection"}}{{template "header" .}}
<div class="flex items-center gap-3 mb-6">
  <h1 class="text-2xl font-bold">{{.Name}}</h1>
  <a href="/c/{{.Name}}/new" class="ml-auto bg-slate-900 text-white rounded px-3 py-1.5 text-sm">New document</a>
  <a href="/c/{{.Name}}/schema" class="border rounded px-3 py-1.5 text-sm">Schema</a>
</div>
{{if not .Docs}}<p class="text-slate-500">No documents in this collection.</p>{{end}}
<div class="space-y-2">
{{range .Docs}}
  <div class="bg-white rounded-lg shadow px-4 py-3 flex items-center gap-4">
    <div class="min-w-0">
      <div class="font-medium truncate">{{.Title}}</div>
      <div class="text-xs text-slate-400">{{.ID}}</div>
    </div>
    <form method="POST" action="/c/{{$.Name}}/{{.ID}}/delete" class="ml-auto">
      <button class="text-sm text-red-600">Delete</button>
    </form>
    <a href="/c/{{$.Name}}/{{.ID}}/edit" class="text-sm text-slate-600">Edit</a>
  </div>
{{end}}
</div>
{{template "footer" .}}{{end}}`

const docFormHTML = `{{define "docform"}}{{template "header" .}}
<h1 class="text-2xl font-bold mb-2">{{.Heading}}</h1>
{{if .Inferred}}<p class="text-sm text-amber-700 mb-4">No saved schema; fields were inferred from an existing document.</p>{{end}}
<form method="POST" action="{{.Action}}" class="bg-white rounded-lg shadow p-6 space-y-4 [&_label]:block [&_label]:text-sm [&_label]:font-medium [&_input]:w-full [&_input]:border [&_input]:rounded [&_input]:px-3 [&_input]:py-2 [&_textarea]:w-full [&_textarea]:border [&_textarea]:rounded [&_textarea]:px-3 [&_textarea]:py-2 [&_.field-error]:text-red-600 [&_.field-error]:text-sm">
{{.Form}}
{{if not .Form}}<p class="text-slate-500">Nothing to render: the collection has no schema and no documents to infer one from.</p>{{end}}
<button class="bg-slate-900 text-white rounded px-4 py-2">Save</button>
</form>
{{template "footer" .}}{{end}}`

const schemaHTML = `{{define "schema"}}{{template "header" .}}
<h1 class="text-2xl font-bold mb-2">Schema: {{.Name}}</h1>
{{if .Error}}<p class="text-red-600 text-sm mb-3">{{.Error}}</p>{{end}}
<form method="POST" action="/c/{{.Name}}/schema" class="bg-white rounded-lg shadow p-6 space-y-4">
  <label class="block text-sm font-medium">Icon
    <input type="text" name="icon" value="{{.Icon}}" class="w-24 border rounded px-3 py-2 block mt-1">
  </label>
  <label class="block text-sm font-medium">Definition
    <textarea name="source" rows="14" class="w-full border rounded px-3 py-2 font-mono text-sm mt-1">{{.Source}}</textarea>
  </label>
  <button class="bg-slate-900 text-white rounded px-4 py-2">Save schema</button>
</form>
{{template "footer" .}}{{end}}`

const filesHTML = `{{define "files"}}{{template "header" .}}
<h1 class="text-2xl font-bold mb-6">Files</h1>
<form method="POST" action="/files/upload" enctype="multipart/form-data" class="bg-white rounded-lg shadow p-4 mb-6 flex items-center gap-3">
  <input type="file" name="file">
  <button class="bg-slate-900 text-white rounded px-3 py-1.5 text-sm">Upload</button>
</form>
{{if not .Objects}}<p class="text-slate-500">No files uploaded.</p>{{end}}
<div class="space-y-2">
{{range .Objects}}
  <div class="bg-white rounded-lg shadow px-4 py-2 flex items-center gap-4 text-sm">
    <span class="font-mono">{{.Path}}</span>
    <span class="text-slate-400">{{.Size}} bytes</span>
    <a href="{{.URL}}" class="ml-auto text-slate-600">Download</a>
    <form method="POST" action="/files/delete">
      <input type="hidden" name="path" value="{{.Path}}">
      <button class="text-red-600">Delete</button>
    </form>
  </div>
{{end}}
</div>
{{template "footer" .}}{{end}}`

const usersHTML = `{{define "users"}}{{template "header" .}}
<h1 class="text-2xl font-bold mb-6">Users</h1>
{{if .Notice}}<p class="text-emerald-700 text-sm mb-3">{{.Notice}}</p>{{end}}
{{if .Demo}}<p class="text-slate-500">User management is unavailable in demo mode.</p>{{else}}
<form method="POST" action="/users/create" class="bg-white rounded-lg shadow p-4 mb-6 flex items-center gap-3 text-sm">
  <input type="email" name="email" placeholder="Email" class="border rounded px-3 py-1.5">
  <input type="password" name="password" placeholder="Password" class="border rounded px-3 py-1.5">
  <select name="role" class="border rounded px-2 py-1.5">
    <option value="editor">editor</option>
    <option value="admin">admin</option>
  </select>
  <button class="bg-slate-900 text-white rounded px-3 py-1.5">Add user</button>
</form>
<div class="space-y-2">
{{range .Users}}
  <div class="bg-white rounded-lg shadow px-4 py-2 flex items-center gap-3 text-sm">
    <span>{{.Email}}</span>
    <span class="text-xs px-2 py-0.5 rounded-full bg-slate-100">{{.Role}}</span>
    {{if .Disabled}}<span class="text-xs px-2 py-0.5 rounded-full bg-red-100 text-red-700">disabled</span>{{end}}
    <form method="POST" action="/users/role" class="ml-auto flex items-center gap-2">
      <input type="hidden" name="id" value="{{.ID}}">
      <select name="role" class="border rounded px-1 py-0.5 text-xs">
        <option value="editor">editor</option>
        <option value="admin">admin</option>
      </select>
      <button class="text-slate-600">Set role</button>
    </form>
    <form method="POST" action="/users/disable">
      <input type="hidden" name="id" value="{{.ID}}">
      <input type="hidden" name="disabled" value="{{if .Disabled}}false{{else}}true{{end}}">
      <button class="text-slate-600">{{if .Disabled}}Enable{{else}}Disable{{end}}</button>
    </form>
    <form method="POST" action="/users/reset">
      <input type="hidden" name="email" value="{{.Email}}">
      <button class="text-slate-600">Reset password</button>
    </form>
  </div>
{{end}}
</div>
{{end}}
{{template "footer" .}}{{end}}`

const analyticsHTML = `{{define "analytics"}}{{template "header" .}}
<h1 class="text-2xl font-bold mb-2">Analytics</h1>
{{if .DemoData}}<p class="text-sm text-amber-700 mb-4">Showing sample data; connect a GA4 property to see live numbers.</p>{{end}}
<table class="w-full bg-white rounded-lg shadow text-sm">
  <thead><tr class="text-left border-b">
    <th class="px-4 py-2">Page</th><th class="px-4 py-2">Views</th><th class="px-4 py-2">Users</th>
  </tr></thead>
  <tbody>
  {{range .Rows}}
    <tr class="border-b last:border-0">
      {{range .Dimensions}}<td class="px-4 py-2 font-mono">{{.}}</td>{{end}}
      {{range .Metrics}}<td class="px-4 py-2">{{.}}</td>{{end}}
    </tr>
  {{end}}
  </tbody>
</table>
{{template "footer" .}}{{end}}`

var pages = template.Must(template.New("pages").Parse(
	headerHTML + footerHTML + loginHTML + dashboardHTML + collectionHTML +
		docFormHTML + schemaHTML + filesHTML + usersHTML + analyticsHTML))

// render executes one named page template; template failures after headers
// are written can only be logged.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("rendering page", zap.String("template", name), zap.Error(err))
	}
}

type loginPage struct {
	Title string
	Demo  bool
	Error string
}

func (s *Server) renderLogin(w http.ResponseWriter, errMsg string) {
	s.render(w, "login", loginPage{Title: "Sign in", Error: errMsg})
}
