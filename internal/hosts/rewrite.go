package hosts

import "strings"

// ReplaceHost returns a rewrite that swaps one host name for another
func ReplaceHost(from, to string) RewriteFunc {
	return func(url string) string {
		return strings.Replace(url, from, to, 1)
	}
}

// PastebinRaw points a pastebin.com link at its raw endpoint
func PastebinRaw(url string) string {
	if strings.Contains(url, "pastebin.com/raw/") {
		return url
	}
	return strings.Replace(url, "pastebin.com/", "pastebin.com/raw/", 1)
}

// RentryRaw appends the raw suffix to a rentry.co link
func RentryRaw(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	if strings.HasSuffix(trimmed, "/raw") {
		return trimmed
	}
	return trimmed + "/raw"
}

// MegaCanonical rewrites legacy Mega links to the path form:
// #F!id!key becomes folder/id#key and #!id!key becomes file/id#key.
func MegaCanonical(url string) string {
	url = strings.Replace(url, "mega.co.nz", "mega.nz", 1)

	var kind, rest string
	if i := strings.Index(url, "#F!"); i >= 0 {
		kind, rest = "folder/", url[i+len("#F!"):]
		url = url[:i]
	} else if i := strings.Index(url, "#!"); i >= 0 {
		kind, rest = "file/", url[i+len("#!"):]
		url = url[:i]
	} else {
		return url
	}

	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url + kind + strings.Replace(rest, "!", "#", 1)
}
