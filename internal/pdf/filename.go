package pdf

import (
	"fmt"
	"regexp"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeName makes a client name safe for use in a filename. The
// result is stable for a given name, which is what lets the cache and
// the merge lookup find files by pattern later.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// FileName derives the canonical document name for an invoice:
// {clientID}_{sanitizedName}_{MM}-{YYYY}.pdf
func FileName(clientID int64, clientName string, month, year int) string {
	return fmt.Sprintf("%d_%s_%02d-%d.pdf", clientID, SanitizeName(clientName), month, year)
}

// PublicURL is the path under which a stored document is served.
func PublicURL(fileName string) string {
	return "/invoices/" + fileName
}

// clientFilePattern matches any document of one client for one period,
// whatever the name segment says. Client renames between render and
// merge still resolve to the same file.
func clientFilePattern(clientID int64, month, year int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^%d_.+_%02d-%d\.pdf$`, clientID, month, year))
}
