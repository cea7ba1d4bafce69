package download

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/snarg/captioner/internal/caption"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

const maxStemRunes = 180

// Filename builds the suggested download name {title}.{ext}. Titles are NFC
// normalised so the same title always yields the same bytes.
func Filename(title string, f caption.Format) string {
	stem := strings.TrimSpace(fileNameReplacer.Replace(norm.NFC.String(title)))
	stem = strings.Trim(stem, ".")
	if r := []rune(stem); len(r) > maxStemRunes {
		stem = strings.TrimSpace(string(r[:maxStemRunes]))
	}
	if stem == "" {
		stem = "subtitle"
	}
	return stem + "." + f.Extension()
}
