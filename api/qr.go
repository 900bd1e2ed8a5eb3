package api

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fancyqr/fancyqr/builder"
	"github.com/fancyqr/fancyqr/generator"
	"github.com/fancyqr/fancyqr/render"
	"github.com/fancyqr/fancyqr/style"
)

// previewSize is the edge of the unstyled preview image, in pixels.
const previewSize = 256

// maxBodyBytes bounds form and JSON request bodies.
const maxBodyBytes = 4 << 10

// viewState is everything the form page shows. Each submit produces a new
// one from the previous form values and the generation result.
type viewState struct {
	Form       builder.FormState
	Notice     *generator.Notification
	ImageURL   string
	Output     string
	EyeStyles  []style.EyeStyle
	BodyStyles []style.BodyStyle
}

func initialView(form builder.FormState, output string) viewState {
	return viewState{
		Form:       form,
		Output:     filepath.Base(output),
		EyeStyles:  style.EyeStyles(),
		BodyStyles: style.BodyStyles(),
	}
}

// nextView keeps the submitted values on screen, whatever the outcome.
func nextView(prev viewState, form builder.FormState, res generator.Result) viewState {
	v := prev
	v.Form = form
	notice := res.Notice
	v.Notice = &notice
	v.ImageURL = ""
	if res.OK() {
		v.ImageURL = "/" + filepath.Base(res.Path)
	}
	return v
}

func formFromRequest(r *http.Request) builder.FormState {
	return builder.FormState{
		URL:        r.PostFormValue("url"),
		Foreground: r.PostFormValue("foreground"),
		Background: r.PostFormValue("background"),
		Eye:        r.PostFormValue("eye"),
		Body:       r.PostFormValue("body"),
	}
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, initialView(s.Defaults, s.Generator.Output()))
}

func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	view := initialView(s.Defaults, s.Generator.Output())

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.Log.Debug("invalid form submission", "error", err)
		view.Notice = &generator.Notification{
			Level:   generator.LevelError,
			Title:   "Error",
			Message: "The form submission could not be read.",
		}
		s.renderPage(w, http.StatusBadRequest, view)
		return
	}
	form := formFromRequest(r)
	res := s.Generator.Generate(r.Context(), form)
	s.renderPage(w, statusFor(res), nextView(view, form, res))
}

type generateResponse struct {
	generator.Notification
	File string `json:"file,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var form builder.FormState
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.Generator.Generate(r.Context(), form)
	resp := generateResponse{Notification: res.Notice}
	if res.OK() {
		resp.File = res.Path
	}
	writeJSON(w, statusFor(res), resp)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	payload := strings.TrimSpace(r.URL.Query().Get("url"))
	if payload == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}
	png, err := render.PlainPNG(payload, s.Level, previewSize)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, s.Generator.Output())
}

func (s *Server) renderPage(w http.ResponseWriter, status int, v viewState) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formPage.Execute(w, v); err != nil {
		s.Log.Error("render form page", "error", err)
	}
}

var formPage = template.Must(template.New("form").Parse(formPageHTML))

const formPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Fancy QR Code Generator</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #f4f4f4;
    color: #222;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
  }
  .card {
    background: #fff;
    border: 1px solid #ddd;
    border-radius: 16px;
    padding: 32px 40px;
    text-align: center;
    max-width: 430px;
    width: 100%;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 16px; }
  label { display: block; font-size: 14px; margin: 12px 0 6px; }
  input[type=text], select { width: 100%; padding: 6px; font-size: 14px; }
  input[type=color] { width: 80px; height: 28px; border: 1px solid #aaa; }
  button {
    margin-top: 24px; padding: 10px 20px;
    background: #4CAF50; color: #fff; border: 0; border-radius: 6px;
    font-size: 15px; font-weight: 600; cursor: pointer;
  }
  .note { color: #888; font-size: 12px; margin-top: 12px; }
  .notice { border-radius: 8px; padding: 10px; margin-bottom: 16px; font-size: 14px; white-space: pre-line; }
  .info { background: #e8f5e9; color: #256029; }
  .warning { background: #fff8e1; color: #8a6d00; }
  .error { background: #fdecea; color: #a12622; }
  #result img { margin-top: 16px; max-width: 260px; }
</style>
</head>
<body>
<div class="card">
  <h1>Fancy QR Code Generator</h1>
  {{with .Notice}}<div class="notice {{.Level}}" role="alert"><strong>{{.Title}}</strong><br>{{.Message}}</div>{{end}}
  <form method="post" action="/">
    <label for="url">Enter URL:</label>
    <input type="text" id="url" name="url" value="{{.Form.URL}}">

    <label for="eye">Select Eye Pattern:</label>
    <select id="eye" name="eye">
      {{- $eye := .Form.Eye}}
      {{range .EyeStyles}}<option value="{{.}}"{{if eq (print .) $eye}} selected{{end}}>{{.}}</option>{{end}}
    </select>

    <label for="body">Select Body Pattern:</label>
    <select id="body" name="body">
      {{- $body := .Form.Body}}
      {{range .BodyStyles}}<option value="{{.}}"{{if eq (print .) $body}} selected{{end}}>{{.}}</option>{{end}}
    </select>

    <label for="foreground">QR Body + Eye Color:</label>
    <input type="color" id="foreground" name="foreground" value="{{.Form.Foreground}}">

    <label for="background">Background Color:</label>
    <input type="color" id="background" name="background" value="{{.Form.Background}}">

    <div><button type="submit">Generate QR Code</button></div>
  </form>
  <div id="result">{{with .ImageURL}}<img src="{{.}}" alt="Generated QR code">{{end}}</div>
  <p class="note">QR will be saved as '{{.Output}}'.</p>
</div>
</body>
</html>`
