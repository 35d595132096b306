// Package scenes supports the translation round-trip for scene-extension
// dialogue: extracting the text to translate, building the chunked request
// payload, and injecting translated text back by position.
package scenes
