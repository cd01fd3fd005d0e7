package site

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// The viewer reads window.TRAJECTORY_CONFIG at startup. The bundler knows
// nothing about it, so the built page gets it injected ahead of the module
// script tag.
const configScript = `<script>
        window.TRAJECTORY_CONFIG = {
            staticMode: true,
            isCustomDir: %t,
            directoryName: %q
        };
        </script>
`

// Browsers refuse fetch() on file:// pages, so opening the built index
// straight from disk would render an empty viewer. The injected check
// replaces the page with serving instructions instead.
const fileProtocolScript = `<script>
        (function() {
            if (window.location.protocol === 'file:') {
                document.body.innerHTML = ` + "`" + `
                    <div style="padding: 40px; font-family: sans-serif; max-width: 600px; margin: 0 auto;">
                        <h1 style="color: #e76f51;">Cannot Load Trajectories</h1>
                        <p>The trajectory viewer cannot run directly from a file:// URL due to browser security restrictions.</p>
                        <h3>Solution: Use a Local Server</h3>
                        <p>Run one of these commands:</p>
                        <pre style="background: #f5f5f5; padding: 15px; border-radius: 5px; overflow-x: auto;">
        # Option 1: Use the built-in server
        trajview serve

        # Option 2: Use Python directly
        cd dist && python3 -m http.server 8050

        # Option 3: Use npx serve
        npx serve dist -p 8050</pre>
                        <p>Then open <code>http://localhost:8050</code> in your browser.</p>
                    </div>
                ` + "`" + `;
            }
        })();
        </script>
`

const moduleScriptTag = `<script type="module" crossorigin`

// PatchIndexHTML injects the viewer configuration and the file-protocol
// notice into the bundled index page. A missing page is reported but not
// fatal.
func PatchIndexHTML(outputDir, directoryName string, customDir bool) error {
	path := filepath.Join(outputDir, "index.html")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: HTML output not found: %s", path)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	html := string(data)
	config := fmt.Sprintf(configScript, customDir, directoryName)
	html = strings.ReplaceAll(html, moduleScriptTag, config+moduleScriptTag)
	html = strings.ReplaceAll(html, "</head>", fileProtocolScript+"</head>")

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("[build] patched %s", path)
	return nil
}
