package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// IndexEntry is one generated projection file listed on the index page.
type IndexEntry struct {
	File         string
	TransmitCall string
	FrequencyMHz float64
	NetDate      string // empty for all-nets aggregates
}

var indexTmpl = template.Must(template.New("index").Parse(`<html>
<head>
<title>Reception Reports for ARES Simplex Net</title>
</head>
<body>
<h1>Reception Maps Aggregated for all ARES Simplex Nets</h1>
{{range .Aggregate}}	<a target="_blank" href="{{.File}}"> {{.TransmitCall}} {{.FrequencyMHz}} MHz </a><br>
{{end}}
<h1>Reception Maps for individual ARES Simplex Nets</h1>
<p>Note that if there are no QSOs indicated on a certain call sign map,
that station may not have participated in that night's net.
So you might see a map for a night in which you did not participate,
with no recorded QSOs. That is normal.</p>
{{range .PerNet}}	<a target="_blank" href="{{.File}}"> {{.NetDate}} {{.TransmitCall}} {{.FrequencyMHz}} MHz </a><br>
{{end}}
</body>
</html>
`))

// WriteIndex renders the index page over the generated projection files,
// aggregates first, then per-net entries.
func WriteIndex(w io.Writer, entries []IndexEntry) error {
	var data struct {
		Aggregate []IndexEntry
		PerNet    []IndexEntry
	}
	for _, e := range entries {
		if e.NetDate == "" {
			data.Aggregate = append(data.Aggregate, e)
		} else {
			data.PerNet = append(data.PerNet, e)
		}
	}
	return indexTmpl.Execute(w, data)
}

// ProjectionFileName names the JSON projection file for one station map.
// Net dates keep their M/D/YYYY form but with slashes flattened, so the
// name stays shell- and URL-safe.
func ProjectionFileName(call string, freqMHz float64, netDate string) string {
	if netDate == "" {
		return fmt.Sprintf("%s_%.2f.json", call, freqMHz)
	}
	return fmt.Sprintf("%s_%.2f_%s.json", call, freqMHz, strings.ReplaceAll(netDate, "/", "-"))
}
