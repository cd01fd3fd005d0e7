package site

import (
	"fmt"
	"log"
	"net/http"
)

// Serve serves the built site directory over HTTP. It blocks until the
// listener fails.
func Serve(dir string, port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("[serve] serving %s on http://localhost%s", dir, addr)
	return http.ListenAndServe(addr, http.FileServer(http.Dir(dir)))
}
