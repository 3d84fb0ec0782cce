package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
)

const layoutHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <title>GEOS-Chem Testing Dashboard</title>
    <style>th,td {
            text-align:left;
            vertical-align:top;
            font-family:monospace;
            padding-left:2em;
        }
    </style>
    <meta charset="UTF-8">
</head>
<body>
{{template "content" .}}
</body>
</html>
`

const dashboardHTML = `{{define "content"}}
<h2>Difference Plots</h2>
<table>
    <tr><th>ID</th><th>Date</th><th>Status</th><th>Site</th></tr>
{{- range .DiffRows}}
    <tr>
        {{- if .DetailURL}}
        <td><a href="{{.DetailURL}}">{{.PrimaryKey}}</a></td>
        {{- else}}
        <td>{{.PrimaryKey}}</td>
        {{- end}}
        <td>{{.Date}}</td>
        <td>{{.Status}}</td>
        <td>{{.Site}}</td>
    </tr>
{{- end}}
</table>

<hr>
<h2>GCHP Simulations</h2>
<table>
    <tr><th>Simulation ID</th><th>Date</th><th>Status</th><th>Code Url</th><th>Site</th></tr>
{{- range .GCHPRows}}
{{- template "simrow" .}}
{{- end}}
</table>

<hr>
<h2>GC-Classic Simulations</h2>
<table>
    <tr><th>Simulation ID</th><th>Date</th><th>Status</th><th>Code Url</th><th>Site</th></tr>
{{- range .GCClassicRows}}
{{- template "simrow" .}}
{{- end}}
</table>
{{end}}

{{define "simrow"}}
    <tr>
        {{- if .DetailURL}}
        <td><a href="{{.DetailURL}}">{{.PrimaryKey}}</a></td>
        {{- else}}
        <td>{{.PrimaryKey}}</td>
        {{- end}}
        <td>{{.Date}}</td>
        <td>{{.Status}}</td>
        <td><a href="{{.CodeURL}}">{{.CommitID}}</a></td>
        <td>{{.Site}}</td>
    </tr>
{{end}}`

const stageTableHTML = `{{define "stagetable"}}
        {{- if .Present}}
        <td>
            <table>
                <tr>
                    <td>Completed</td>
                    <td>{{.Completed}}</td>
                </tr>
                <tr>
                    <td>Log File</td>
                    <td><a href="{{.Log}}">{{.Log}}</a></td>
                </tr>
                <tr>
                    <td>Start Time</td>
                    <td>{{.StartTime}}</td>
                </tr>
                <tr>
                    <td>End Time</td>
                    <td>{{.EndTime}}</td>
                </tr>
                <tr>
                    <td>Public Artifacts</td>
                    <td>
                    {{- range .PublicArtifacts}}
                        <a href="{{.Href}}">{{.Text}}</a><br>
                    {{- end}}
                    </td>
                </tr>
                <tr>
                    <td>Stage Artifacts</td>
                    <td>
                    {{- range .Artifacts}}
                        {{- if .Href}}
                        <a href="{{.Href}}">{{.Text}}</a><br>
                        {{- else}}
                        {{.Text}}<br>
                        {{- end}}
                    {{- end}}
                    </td>
                </tr>
                <tr>
                    <td>Metadata</td>
                    <td>{{.Metadata}}</td>
                </tr>
            </table>
        </td>
        {{- else}}
        <td>n/a</td>
        {{- end}}
{{end}}`

const entryRowsHTML = `{{define "entryrows"}}
    <tr>
        <td>Primary Key</td>
        <td>{{.PrimaryKey}}</td>
    </tr>
    <tr>
        <td>Creation Date</td>
        <td>{{.CreationDate}}</td>
    </tr>
    <tr>
        <td>Execution Status</td>
        <td>{{.ExecStatus}}</td>
    </tr>
    <tr>
        <td>Execution Site</td>
        <td>{{.Site}}</td>
    </tr>
    <tr>
        <td>S3 Uri</td>
        <td>{{.S3URI}}</td>
    </tr>
    <tr>
        <td>Description</td>
        <td>{{.Description}}</td>
    </tr>
{{end}}`

const simulationHTML = `{{define "content"}}
<table>
    <tr><th>Name</th><th>Value</th></tr>
{{- template "entryrows" .Entry}}
    <tr>
        <td>Setup Run Directory</td>
{{- template "stagetable" .Setup}}
    </tr>
    <tr>
        <td>Run Simulation</td>
{{- template "stagetable" .RunSimulation}}
    </tr>
</table>
{{end}}`

const differenceHTML = `{{define "content"}}
<table>
    <tr><th>Name</th><th>Value</th></tr>
{{- template "entryrows" .Entry}}
    <tr>
        <td>GCPy Output</td>
{{- template "stagetable" .RunComparison}}
    </tr>
</table>
{{end}}`

var (
	dashboardTmpl  = mustPage(dashboardHTML)
	simulationTmpl = mustPage(stageTableHTML, entryRowsHTML, simulationHTML)
	differenceTmpl = mustPage(stageTableHTML, entryRowsHTML, differenceHTML)
)

func mustPage(fragments ...string) *template.Template {
	t := template.Must(template.New("layout").Parse(layoutHTML))
	for _, f := range fragments {
		t = template.Must(t.Parse(f))
	}
	return t
}

// statusDecorator colors the execution statuses on every rendered page, a
// straight text substitution over the final markup.
var statusDecorator = strings.NewReplacer(
	"SUCCESSFUL", `<span style="color:green">&#9989; SUCCESSFUL</span>`,
	"IN_PROGRESS", `<span style="color:orange">&#8987; IN_PROGRESS</span>`,
	"FAILED", `<span style="color:red">&#10060; FAILED</span>`,
)

func renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(statusDecorator.Replace(buf.String())))
}
