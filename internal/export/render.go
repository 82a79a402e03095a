package export

import (
	"bytes"
	"html/template"
	"time"

	"github.com/rowanberg/guestbook-server/internal/store"
)

// snapshotTemplate renders one standalone, offline-viewable document. All
// user-supplied text passes through html/template's contextual escaping;
// photos are embedded as data URIs so the page has no external dependencies.
const snapshotTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Georgia, 'Times New Roman', serif; max-width: 720px; margin: 0 auto; padding: 2rem 1rem; color: #2b2b2b; background: #faf8f5; }
  header { text-align: center; border-bottom: 2px solid #d4c5a9; padding-bottom: 1rem; margin-bottom: 2rem; }
  header h1 { margin: 0 0 .5rem; font-weight: normal; }
  header .counts { color: #8a7b63; font-size: .9rem; }
  .entry { margin-bottom: 2.5rem; }
  .entry .name { font-weight: bold; font-size: 1.1rem; }
  .entry .when { color: #8a7b63; font-size: .85rem; margin-bottom: .5rem; }
  .entry .note { white-space: pre-wrap; line-height: 1.5; }
  .photos { margin-top: .75rem; }
  .photos img { max-height: 140px; max-width: 140px; margin-right: .5rem; border-radius: 4px; box-shadow: 0 1px 3px rgba(0,0,0,.25); }
  footer { text-align: center; color: #8a7b63; font-size: .85rem; border-top: 2px solid #d4c5a9; padding-top: 1rem; margin-top: 2rem; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <div class="counts">{{.MessageCount}} messages &middot; {{.PhotoCount}} photos</div>
</header>
{{range .Entries}}<div class="entry">
  <div class="name">{{.Name}}</div>
  <div class="when">{{.TimeLabel}}</div>
  <div class="note">{{.Note}}</div>
  {{if .Photos}}<div class="photos">
  {{range .Photos}}<a href="{{.DataURI}}" target="_blank"><img src="{{.DataURI}}" alt=""></a>
  {{end}}</div>{{end}}
</div>
{{end}}<footer>Exported on {{.ExportDate}}</footer>
</body>
</html>
`

var snapshotTmpl = template.Must(template.New("snapshot").Parse(snapshotTemplate))

type snapshotEntry struct {
	Name      string
	Note      string
	TimeLabel string
	Photos    []EmbeddedImage
}

type snapshotData struct {
	Title        string
	MessageCount int
	PhotoCount   int
	Entries      []snapshotEntry
	ExportDate   string
}

// renderSnapshot produces one snapshot document for the given entries,
// chronological order assumed. Returns the document and its embedded photo
// count.
func renderSnapshot(title string, entries []store.Entry, photos map[int64][]EmbeddedImage, exportedAt time.Time) ([]byte, int, error) {
	data := snapshotData{
		Title:      title,
		ExportDate: exportedAt.Format("January 2, 2006"),
	}
	for _, e := range entries {
		imgs := photos[e.ID]
		data.Entries = append(data.Entries, snapshotEntry{
			Name:      e.Name,
			Note:      e.Note,
			TimeLabel: e.CreatedAt.Format("January 2, 2006 at 3:04 PM"),
			Photos:    imgs,
		})
		data.PhotoCount += len(imgs)
	}
	data.MessageCount = len(entries)

	var buf bytes.Buffer
	if err := snapshotTmpl.Execute(&buf, data); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), data.PhotoCount, nil
}
