package site

// pageTemplate is the Go html/template for each rendered page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}{{if .ProjectName}} | {{.ProjectName}}{{end}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
{{- range .Styles}}
  <link rel="stylesheet" href="{{.}}">
{{- end}}
</head>
<body>
  <nav class="sidebar">
    {{if .ProjectName}}<h2 class="project-title">{{.ProjectName}}</h2>{{end}}
    {{.TreeHTML}}
  </nav>
  <main class="content">
    <article class="page-content">
{{.Content}}
    </article>
  </main>
{{- range .Scripts}}
  <script src="{{.}}"></script>
{{- end}}
</body>
</html>`

// cssContent styles the page chrome. Tab blocks are styled by the runtime
// stylesheet linked from pages that contain them.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --link: #0d6efd;
  --border: #dee2e6;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  display: flex;
  min-height: 100vh;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  color: var(--text);
  background: var(--bg);
}

.sidebar {
  width: 260px;
  flex-shrink: 0;
  padding: 16px;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  overflow-y: auto;
}

.sidebar ul { list-style: none; margin: 0; padding-left: 12px; }
.sidebar li { margin: 4px 0; }
.sidebar a { color: var(--text); text-decoration: none; }
.sidebar a.active { color: var(--link); font-weight: 600; }
.sidebar .dir-toggle { font-weight: 600; }

.content {
  flex: 1;
  max-width: 960px;
  padding: 24px 48px;
  overflow-y: auto;
}

pre { padding: 12px; overflow-x: auto; border: 1px solid var(--border); border-radius: 4px; }
`
