package downloading

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/unidecode"
)

var nameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// Uploaders often keep the original extension in the sound name
var audioExts = map[string]bool{
	".wav": true, ".mp3": true, ".ogg": true, ".flac": true,
	".aif": true, ".aiff": true, ".m4a": true, ".opus": true,
}

// FileName builds "<id>_<name><ext>". The name is transliterated to ASCII,
// separators become underscores and a trailing audio extension is dropped.
func FileName(id, name, ext string) string {
	name = strings.TrimSpace(name)
	if audioExts[strings.ToLower(filepath.Ext(name))] {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	name = nameReplacer.Replace(unidecode.Unidecode(name))
	name = strings.Trim(name, "._")
	if name == "" {
		name = "sound"
	}
	if id == "" {
		return name + ext
	}
	return id + "_" + name + ext
}
