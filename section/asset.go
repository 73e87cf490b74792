package section

import (
	"strings"
)

const (
	UploadsFolder       = "uploads"
	DefaultLegacyFolder = "public"
)

// AssetNormalizer canonicalizes image references typed or picked in the
// editors so they are stored the same way whichever editor wrote them.
type AssetNormalizer struct {
	// BaseURL is the site origin; a reference starting with it is made relative.
	BaseURL string
	// LegacyFolder is a folder older uploads were stored under, e.g. "public".
	LegacyFolder string
}

// NormalizeAssetPath canonicalizes raw with the default legacy folder.
func NormalizeAssetPath(raw, baseURL string) string {
	return AssetNormalizer{BaseURL: baseURL, LegacyFolder: DefaultLegacyFolder}.Normalize(raw)
}

// Normalize returns absolute and data URLs untouched. Relative paths come back
// as "uploads/<rest>" with no leading slash, no repeated slashes and exactly
// one uploads/ segment.
func (n AssetNormalizer) Normalize(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" || IsDataURL(p) {
		return p
	}

	if base := strings.TrimRight(strings.TrimSpace(n.BaseURL), "/"); base != "" && strings.HasPrefix(p, base) {
		rest := p[len(base):]
		if rest == "" || rest[0] == '/' || rest[0] == '?' {
			p = rest
		}
	}
	if IsAbsoluteURL(p) || hasScheme(p) {
		return p
	}

	p = collapseSlashes(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimLeft(p, "/")
	for strings.HasPrefix(p, "./") {
		p = strings.TrimLeft(strings.TrimPrefix(p, "./"), "/")
	}
	if p == "" {
		return ""
	}

	legacy := strings.Trim(n.LegacyFolder, "/")
	if folder := strings.TrimRight(p, "/"); folder == UploadsFolder || (legacy != "" && folder == legacy) {
		return ""
	}
	if legacy != "" && strings.HasPrefix(p, legacy+"/") {
		p = strings.TrimPrefix(p, legacy+"/")
	}
	for strings.HasPrefix(p, UploadsFolder+"/"+UploadsFolder+"/") {
		p = strings.TrimPrefix(p, UploadsFolder+"/")
	}
	if !strings.HasPrefix(p, UploadsFolder+"/") {
		p = UploadsFolder + "/" + p
	}
	return p
}

// AssetURL turns a stored reference into something a browser can load.
func AssetURL(path, baseURL string) string {
	path = strings.TrimSpace(path)
	if path == "" || IsAbsoluteURL(path) || IsDataURL(path) || hasScheme(path) {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "data:")
}

// IsAbsoluteURL accepts http(s) URLs and protocol relative ones. "//x/y" only
// counts as protocol relative when x looks like a host, so a relative path
// typed with doubled slashes is still normalized.
func IsAbsoluteURL(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return true
	}
	if !strings.HasPrefix(lower, "//") {
		return false
	}
	host, rest, found := strings.Cut(lower[2:], "/")
	return found && rest != "" && strings.Contains(host, ".")
}

// hasScheme reports whether s starts with a URI scheme such as "ftp:" or
// "mailto:". Such references are not paths into the upload folder.
func hasScheme(s string) bool {
	scheme, _, found := strings.Cut(s, ":")
	if !found || scheme == "" {
		return false
	}
	for i, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func collapseSlashes(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	prevSlash := false
	for _, r := range p {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
