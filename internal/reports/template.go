package reports

// reportTemplate is the page shell for the HTML run report. Chart images
// are referenced relative to the report file, so the page works both from
// the local output folder and when served via /files/.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Omni-Grid Analytics Report - {{.Date}}</title>
<style>
body { font-family: "Segoe UI", Arial, sans-serif; max-width: 1100px; margin: 0 auto; padding: 24px; color: #2c3e50; background: #f7f9fb; }
h1, h2, h3 { color: #1a2733; }
h1 { border-bottom: 3px solid #3498db; padding-bottom: 8px; }
h2 { border-bottom: 1px solid #d6dee6; padding-bottom: 4px; margin-top: 32px; }
table { border-collapse: collapse; width: 100%; margin: 12px 0; background: #fff; }
th, td { border: 1px solid #d6dee6; padding: 6px 10px; text-align: left; }
th { background: #eaf2f8; }
.chart-grid { display: flex; flex-wrap: wrap; gap: 16px; margin: 16px 0; }
.chart-card { background: #fff; border: 1px solid #d6dee6; border-radius: 6px; padding: 12px; flex: 1 1 480px; }
.chart-card h3 { margin-top: 0; }
.chart-card img { max-width: 100%; height: auto; }
.dashboard-link { display: inline-block; margin: 12px 0; padding: 10px 18px; background: #3498db; color: #fff; border-radius: 4px; text-decoration: none; }
footer { margin-top: 40px; font-size: 0.85em; color: #7f8c9b; border-top: 1px solid #d6dee6; padding-top: 10px; }
</style>
</head>
<body>
{{.Content}}
{{if .Dashboard}}<a class="dashboard-link" href="{{.Dashboard}}">Open Interactive Dashboard</a>{{end}}
{{if .Charts}}
<h2>Charts</h2>
<div class="chart-grid">
{{range .Charts}}<div class="chart-card"><h3>{{.Title}}</h3><img src="{{.Src}}" alt="{{.Title}}"></div>
{{end}}</div>
{{end}}
<footer>Generated at {{.GeneratedAt}} by Omni-Grid Analytics Tool v{{.Version}}</footer>
</body>
</html>
`
