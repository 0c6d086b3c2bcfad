package normalize

import (
	"regexp"
	"strings"
)

const (
	logoServiceHost = "logo.clearbit.com"
	logoServiceURL  = "https://" + logoServiceHost + "/"

	// placeholderDomain shows up in scraped websites that point nowhere.
	placeholderDomain = "example.com"
)

// jobBoardDomains must never be credited as an employer's own site.
var jobBoardDomains = []string{
	"indeed.com",
	"linkedin.com",
	"glassdoor.com",
	"ziprecruiter.com",
}

// knownDomains maps a fragment of a company name to the domain its logo lives
// under, for employers whose name does not guess well. Checked in order.
var knownDomains = []struct {
	name, domain string
}{
	{"airbnb", "airbnb.com"},
	{"stripe", "stripe.com"},
	{"coinbase", "coinbase.com"},
	{"doordash", "doordash.com"},
	{"cisco", "cisco.com"},
	{"webflow", "webflow.com"},
	{"deel", "deel.com"},
	{"samsara", "samsara.com"},
	{"deloitte", "deloitte.com"},
	{"wealthfront", "wealthfront.com"},
	{"bitpay", "bitpay.com"},
	{"meetup", "meetup.com"},
	{"sofi", "sofi.com"},
	{"headspace", "headspace.com"},
	{"square", "squareup.com"},
	{"experian", "experian.com"},
	{"fanatics", "fanatics.com"},
	{"hopper", "hopper.com"},
	{"elevenlabs", "elevenlabs.io"},
	{"shippo", "goshippo.com"},
	{"turing", "turing.com"},
	{"granicus", "granicus.com"},
	{"flexera", "flexera.com"},
	{"pathai", "pathai.com"},
	{"whatnot", "whatnot.com"},
	{"imply", "imply.io"},
	{"esusu", "esusu.org"},
	{"bestow", "bestow.com"},
	{"vultr", "vultr.com"},
	{"runpod", "runpod.io"},
	{"hirewell", "hirewell.com"},
	{"dataannotation", "dataannotation.tech"},
	{"viget", "viget.com"},
	{"flosum", "flosum.com"},
	{"nucleus security", "nucleussec.com"},
	{"everfox", "everfox.com"},
	{"crypto.com", "crypto.com"},
}

var (
	protocolPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	nonWordPattern  = regexp.MustCompile(`[^\w]`)
)

// ExtractDomain strips protocol, path and a leading "www." from a URL.
func ExtractDomain(website string) string {
	s := protocolPattern.ReplaceAllString(strings.TrimSpace(website), "")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimPrefix(s, "www.")
}

// IsJobBoardDomain reports exact or subdomain matches against the block-list.
func IsJobBoardDomain(domain string) bool {
	for _, board := range jobBoardDomains {
		if domain == board || strings.HasSuffix(domain, "."+board) {
			return true
		}
	}
	return false
}

// DeriveLogoURL guesses a logo for a company. A real website wins, then a
// known name-to-domain mapping; failing both, a clean single-word name of 3
// to 20 characters is tried as a .com.
func DeriveLogoURL(website, name string) string {
	if website != "" {
		domain := ExtractDomain(website)
		if domain != "" && !IsJobBoardDomain(domain) && !strings.Contains(domain, placeholderDomain) {
			return logoServiceURL + domain
		}
	}

	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	for _, known := range knownDomains {
		if strings.Contains(lower, known.name) {
			return logoServiceURL + known.domain
		}
	}

	clean := nonWordPattern.ReplaceAllString(lower, "")
	if len(clean) >= 3 && len(clean) <= 20 && !strings.ContainsAny(trimmed, " \t\n") {
		return logoServiceURL + clean + ".com"
	}

	return ""
}

// IsBadLogoURL reports a stored logo that was derived from a job board or a
// placeholder domain instead of the employer.
func IsBadLogoURL(logo string) bool {
	if strings.Contains(logo, placeholderDomain) {
		return true
	}
	i := strings.Index(logo, logoServiceHost+"/")
	if i < 0 {
		return false
	}
	return IsJobBoardDomain(ExtractDomain(logo[i+len(logoServiceHost)+1:]))
}
