package storage

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SecureFilename returns a version of a client supplied filename that is safe
// to use as a storage key. The result contains only ASCII letters, digits,
// '_', '.' and '-', never starts or ends with '.' or '_', and never names a
// reserved Windows device. It may be empty, which callers must reject.
//
//	SecureFilename("My cool movie.mov")     == "My_cool_movie.mov"
//	SecureFilename("../../../etc/passwd")   == "etc_passwd"
//	SecureFilename("i contain cool ümläuts.txt") == "i_contain_cool_umlauts.txt"
func SecureFilename(name string) string {
	ascii, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isNonASCII))),
		name,
	)
	if err != nil {
		return ""
	}

	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeFilenameChars.ReplaceAllString(ascii, "")
	ascii = strings.Trim(ascii, "._")

	if ascii != "" {
		stem, _, _ := strings.Cut(ascii, ".")
		if windowsDeviceNames[strings.ToUpper(stem)] {
			ascii = "_" + ascii
		}
	}

	return ascii
}

func isNonASCII(r rune) bool {
	return r > unicode.MaxASCII
}
