package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/nocturne-rpg/threat-deck-engine/internal/protocol"
)

// IndexPage renders the live-play shell. The full state snapshot is
// embedded as JSON for the client to hydrate from; everything after page
// load arrives as patches over the stream socket.
func IndexPage(snapshot protocol.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}

		if _, err := io.WriteString(w, "<!DOCTYPE html><html lang=\"en\"><head>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<meta charset=\"utf-8\"/>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<title>Threat Deck</title>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<link rel=\"stylesheet\" href=\"/static/app.css\"/>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</head><body>"); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "<main id=\"app\" data-phase=\""+templ.EscapeString(snapshot.Phase)+"\">"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<noscript>This companion needs JavaScript to follow the table.</noscript>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</main>"); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "<script id=\"snapshot\" type=\"application/json\">"); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</script>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<script src=\"/static/app.js\"></script>"); err != nil {
			return err
		}

		_, err = io.WriteString(w, "</body></html>")
		return err
	})
}
