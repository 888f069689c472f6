package adapters

import "strings"

// DefaultDomainCode is used when neither the job nor the settings name one
const DefaultDomainCode = "com"

// knownSuffixes pass through resolution unchanged
var knownSuffixes = map[string]bool{
	"com": true, "de": true, "fr": true, "it": true, "es": true, "nl": true,
	"co.uk": true, "com.au": true, "ca": true, "co.jp": true, "com.mx": true,
	"com.tr": true, "ae": true, "sg": true, "sa": true,
}

// DomainResolver maps region codes to the site's domain suffix
type DomainResolver struct {
	aliases     map[string]string
	defaultCode string
}

// NewDomainResolver creates a resolver. An empty defaultCode means "com".
func NewDomainResolver(aliases map[string]string, defaultCode string) *DomainResolver {
	if defaultCode == "" {
		defaultCode = DefaultDomainCode
	}
	return &DomainResolver{
		aliases:     aliases,
		defaultCode: defaultCode,
	}
}

// DefaultCode returns the code used for empty input
func (d *DomainResolver) DefaultCode() string {
	return d.defaultCode
}

// Resolve returns the domain suffix for code.
// Suffix literals ("co.uk", or anything with a dot) pass through, aliases are
// looked up, and unknown codes silently fall back to the default.
func (d *DomainResolver) Resolve(code string) string {
	if code == "" {
		code = d.defaultCode
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if strings.Contains(code, ".") || knownSuffixes[code] {
		return code
	}
	if suffix, ok := d.aliases[code]; ok {
		return suffix
	}
	return d.defaultCode
}
