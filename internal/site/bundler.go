package site

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// runBundler invokes the configured bundler command in the site directory.
func (b *Builder) runBundler() error {
	fields := strings.Fields(b.BundlerCommand)
	if len(fields) == 0 {
		return errors.New("no bundler command configured")
	}

	log.Printf("[build] running bundler: %s", b.BundlerCommand)
	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Dir = b.SiteDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("bundler failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}
