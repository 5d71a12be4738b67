package main

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/podkit/podkit"
)

// renderHome renders the HTML status page from the same view data the core
// would otherwise serve as JSON.
func renderHome(w http.ResponseWriter, _ *http.Request, page podkit.StatusPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	homeTmpl.Execute(w, homeData{
		StatusPage: page,
		UptimeStr:  fmt.Sprintf("%.1f", page.Snapshot.UptimeSeconds),
		MemoryStr:  fmt.Sprintf("%.1f", float64(page.Snapshot.MemoryBytes)/1024/1024),
		CPUStr:     fmt.Sprintf("%.1f", page.Snapshot.CPUPercent),
	})
}

type homeData struct {
	podkit.StatusPage
	UptimeStr string
	MemoryStr string
	CPUStr    string
}

var homeTmpl = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>podkit webapp</title>
</head>
<body>
<h1>podkit webapp</h1>
<h3>Application</h3>
<ul>
<li>Version: {{.Identity.Version}}</li>
<li>Pod: {{.Identity.PodName}}</li>
<li>Node: {{.Identity.NodeName}}</li>
<li>Namespace: {{.Identity.Namespace}}</li>
</ul>
<h3>Runtime</h3>
<ul>
<li>Uptime: {{.UptimeStr}}s</li>
<li>Memory: {{.MemoryStr}} MB</li>
<li>CPU: {{.CPUStr}}%</li>
<li>Requests: {{.Snapshot.TotalRequests}}</li>
</ul>
<h3>Endpoints</h3>
<table>
{{ range .Routes -}}
<tr><td><pre>{{.Method}} {{.Path}}</pre></td><td>{{.Description}}</td></tr>
{{ end -}}
</table>
</body>
</html>
`))
