// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package api

import "html/template"

// Inline templates for the web surface. The pages are deliberately small and
// self-contained: no static asset pipeline, no external stylesheets.

type formField struct {
	Name  string
	Label string
}

type indexPage struct {
	Fields []formField
}

type resultPage struct {
	Prediction float64
}

type errorPage struct {
	Title   string
	Message string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Wine Quality Prediction</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 32rem; color: #222; }
h1 { font-size: 1.5rem; }
label { display: block; margin-top: 0.75rem; font-size: 0.9rem; }
input { width: 100%; padding: 0.4rem; margin-top: 0.2rem; box-sizing: border-box; }
button { margin-top: 1.25rem; padding: 0.5rem 1.5rem; font-size: 1rem; cursor: pointer; }
</style>
</head>
<body>
<h1>Wine Quality Prediction</h1>
<form method="post" action="/predict_web">
{{- range .Fields}}
  <label>{{.Label}}
    <input type="text" name="{{.Name}}" inputmode="decimal" required>
  </label>
{{- end}}
  <button type="submit">Predict</button>
</form>
</body>
</html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Prediction Result</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 32rem; color: #222; }
h1 { font-size: 1.5rem; }
.prediction { font-size: 2.5rem; font-weight: 600; margin: 1rem 0; }
a { color: #0757ba; }
</style>
</head>
<body>
<h1>Predicted wine quality</h1>
<div class="prediction">{{printf "%.4f" .Prediction}}</div>
<p><a href="/">Make another prediction</a></p>
</body>
</html>
`))

var errorPageTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 32rem; color: #222; }
h1 { font-size: 1.5rem; color: #b00020; }
a { color: #0757ba; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Back</a></p>
</body>
</html>
`))
