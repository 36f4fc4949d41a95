//go:build ignore

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

var (
	m                 = minify.New()
	assetReplacements = map[string]string{
		"style.css": "style.min.css",
		"editor.js": "editor.min.js",
	}
)

func init() {
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)
}

func main() {
	release := flag.Bool("release", false, "Process assets for release")
	clean := flag.Bool("clean", false, "Clean processed assets and restore original files")
	flag.Parse()

	if *release && *clean {
		log.Fatal("Cannot use -release and -clean flags simultaneously.")
	}

	switch {
	case *release:
		fmt.Println("Processing assets for release...")
		if err := processAssets(); err != nil {
			log.Fatalf("Failed to process assets for release: %v", err)
		}
		fmt.Println("Assets processed successfully.")
	case *clean:
		fmt.Println("Cleaning up processed assets...")
		if err := cleanupAssets(); err != nil {
			log.Fatalf("Failed to clean up assets: %v", err)
		}
		fmt.Println("Cleanup complete.")
	default:
		fmt.Println("No action specified. Use -release to process assets or -clean to clean up.")
	}
}

func processAssets() error {
	for original, minified := range assetReplacements {
		if err := minifyFile(original, minified); err != nil {
			return err
		}
	}
	return updateHTMLReferences(false)
}

func cleanupAssets() error {
	for _, minified := range assetReplacements {
		path, err := findAsset(minified)
		if err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return updateHTMLReferences(true)
}

func minifyFile(original, minified string) error {
	path, err := findAsset(original)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	mediatype := "text/css"
	if strings.HasSuffix(original, ".js") {
		mediatype = "text/javascript"
	}
	out, err := m.Bytes(mediatype, data)
	if err != nil {
		return fmt.Errorf("minify %s: %w", original, err)
	}

	target := filepath.Join(filepath.Dir(path), minified)
	return os.WriteFile(target, out, 0o644)
}

// updateHTMLReferences rewrites asset links in the templates, pointing them
// at the minified files for release and back at the originals for cleanup.
func updateHTMLReferences(restore bool) error {
	return filepath.Walk("templates", func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		content := string(data)
		for original, minified := range assetReplacements {
			if restore {
				content = strings.ReplaceAll(content, minified, original)
			} else {
				content = strings.ReplaceAll(content, original, minified)
			}
		}
		if content == string(data) {
			return nil
		}
		return os.WriteFile(path, []byte(content), info.Mode())
	})
}

func findAsset(name string) (string, error) {
	var found string
	err := filepath.Walk("static", func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if filepath.Base(path) == name {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("asset %s not found under static/", name)
	}
	return found, nil
}
