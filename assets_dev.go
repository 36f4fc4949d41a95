//go:build !release

package main

import (
	"log"
	"os"
)

func init() {
	log.Println("Running in debug mode, serving templates and static files from disk.")
	templatesFS = os.DirFS("templates")
	staticFS = os.DirFS("static")
}
