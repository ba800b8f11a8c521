package extract

import (
	"regexp"
	"strings"
)

// Rule is one entry in an ordered pattern table. Patterns run
// case-insensitively in multiline mode; Group selects the submatch to
// capture (0 = whole match). Rule order is load-bearing: scalar fields
// take the first capture produced by the table, so earlier rules win.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Group   int
}

func rule(name, expr string) Rule {
	return ruleGroup(name, expr, 1)
}

func ruleGroup(name, expr string, group int) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`(?im)` + expr),
		Group:   group,
	}
}

// matchAll runs every rule in table order and accumulates trimmed
// captures, deduplicating while preserving first-seen order.
func matchAll(rules []Rule, text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rules {
		for _, m := range r.Pattern.FindAllStringSubmatch(text, -1) {
			if r.Group >= len(m) {
				continue
			}
			v := strings.TrimSpace(m[r.Group])
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// matchFirst returns the first capture of the earliest rule that
// matches anything (first-match-wins for scalar fields).
func matchFirst(rules []Rule, text string) (string, bool) {
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil || r.Group >= len(m) {
			continue
		}
		v := strings.TrimSpace(m[r.Group])
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// Case identification
var caseNumberRules = []Rule{
	rule("case-no-label", `Case\s+(?:No\.?|Number)[:\s]*(\d{1,2}[:-]\w{2,4}[:-]\d+)`),
	rule("civil-action-no", `Civil Action No\.?\s*(\d{1,2}[:-]\w{2,4}[:-]\d+)`),
	rule("bare-cv-docket", `(\d{1,2}[:-]cv[:-]\d+)`),
}

var complaintDateRules = []Rule{
	rule("filed-or-dated", `(?:Filed|Dated)[:\s]*(\w+\s+\d{1,2},?\s+\d{4})`),
	rule("bare-long-date", `(\w+\s+\d{1,2},?\s+\d{4})`),
}

var courtRules = []Rule{
	rule("district-court-caption", `UNITED STATES DISTRICT COURT\s+(?:FOR THE\s+)?(.+?)(?:\n|$)`),
	rule("in-the-district-court", `IN THE UNITED STATES DISTRICT COURT\s+(.+?)(?:\n|$)`),
}

// Entities. The suffix alternation is what anchors a company match.
const companySuffixes = `Inc\.|LLC|Ltd\.|Corp\.|Corporation|LP|LLP|PTE|SA|AG|BV|GmbH`

var companyRules = []Rule{
	rule("labeled-defendant-company",
		`Defendant[s]?[:\s]+([A-Z][A-Za-z0-9\s,\.&]+(?:`+companySuffixes+`))`),
	rule("company-with-state-of-incorporation",
		`([A-Z][A-Za-z0-9\s,\.&]+(?:`+companySuffixes+`))[,\s]+(?:a |an )?(?:Delaware|Nevada|Wyoming|California|New York|Texas|Florida|British Virgin Islands|Cayman)`),
}

var reliefDefendantRules = []Rule{
	rule("labeled-relief-defendant",
		`Relief\s+Defendant[s]?[:\s]+([A-Z][A-Za-z0-9\s,\.&]+(?:`+companySuffixes+`))`),
}

var individualRules = []Rule{
	rule("labeled-defendant-individual",
		`Defendant[s]?[:\s]+([A-Z][a-z]+\s+(?:[A-Z]\.?\s+)?[A-Z][a-z]+)`),
	rule("individual-qualifier",
		`([A-Z][a-z]+\s+(?:[A-Z]\.?\s+)?[A-Z][a-z]+)[,\s]+(?:an individual|individually)`),
}

// Identifiers
var cikRules = []Rule{
	rule("cik-label", `CIK[:\s#]*(\d{7,10})`),
	rule("central-index-key", `Central Index Key[:\s]*(\d{7,10})`),
}

var einRules = []Rule{
	rule("ein-label", `EIN[:\s#]*(\d{2}-\d{7})`),
	rule("employer-identification", `Employer Identification Number[:\s]*(\d{2}-\d{7})`),
}

var crdRules = []Rule{
	rule("crd-label", `CRD[:\s#]*(\d+)`),
	rule("central-registration", `Central Registration Depository[:\s]*(\d+)`),
}

var secFileRules = []Rule{
	rule("sec-file-no", `SEC File No\.?[:\s]*(\d+-\d+)`),
	rule("file-number", `File Number[:\s]*(\d+-\d+)`),
}

// Financial. These capture the whole snippet (group 0) so the amount
// parser can see the million/billion magnitude word.
var amountRules = []Rule{
	ruleGroup("dollar-figure", `\$\d{1,3}(?:,\d{3})*(?:\.\d{2})?(?:\s*(?:million|billion))?`, 0),
	ruleGroup("spelled-dollars", `\d{1,3}(?:,\d{3})*(?:\.\d{2})?\s*(?:million|billion)\s*dollars`, 0),
}

var victimCountRules = []Rule{
	rule("qualified-investor-count",
		`(?:approximately|at least|more than|over)\s*(\d{1,3}(?:,\d{3})*)\s*(?:investors|victims|individuals)`),
	rule("bare-investor-count",
		`(\d{1,3}(?:,\d{3})*)\s*(?:investors|victims|individuals)`),
}

// Jurisdiction / location
var jurisdictionRules = []Rule{
	rule("incorporated-under",
		`(?:incorporated|organized|formed)\s+(?:in|under the laws of)\s+([A-Za-z\s]+?)(?:\.|,|;|\n)`),
	rule("entity-type-qualifier",
		`(?:a |an )\s*([A-Za-z\s]+?)\s*(?:corporation|company|LLC|limited)`),
}

var addressRules = []Rule{
	rule("principal-place-of-business",
		`(?:principal place of business|located|address)[:\s]+([0-9]+[^\.]+(?:Street|St\.|Avenue|Ave\.|Road|Rd\.|Boulevard|Blvd\.|Drive|Dr\.)[^\.]+)`),
}

// Fraud language. Each phrase is its own rule so new schemes can be
// appended without touching the classifier.
var fraudIndicatorRules = []Rule{
	rule("ponzi-scheme", `(Ponzi scheme)`),
	rule("pyramid-scheme", `(pyramid scheme)`),
	rule("securities-fraud", `(securities fraud)`),
	rule("investment-fraud", `(investment fraud)`),
	rule("wire-fraud", `(wire fraud)`),
	rule("mail-fraud", `(mail fraud)`),
	rule("money-laundering", `(money laundering)`),
	rule("accounting-fraud", `(accounting fraud)`),
	rule("insider-trading", `(insider trading)`),
	rule("market-manipulation", `(market manipulation)`),
	rule("pump-and-dump", `(pump.and.dump)`),
	rule("shell-company", `(shell company)`),
	rule("unregistered-securities", `(unregistered securities)`),
	rule("offering-fraud", `(offering fraud)`),
}

// Statutes
var statuteRules = []Rule{
	rule("securities-act-section", `Section\s+(\d+\([a-z]\))\s+of\s+the\s+(?:Securities\s+)?(?:Exchange\s+)?Act`),
	rule("usc-citation", `(\d+\s+U\.S\.C\.\s+§?\s*\d+)`),
	rule("rule-citation", `Rule\s+(\d+[a-z]?-\d+)`),
	rule("securities-act-1933", `(Securities Act of 1933)`),
	rule("exchange-act-1934", `(Securities Exchange Act of 1934)`),
	rule("advisers-act", `(Investment Advisers Act)`),
	rule("company-act", `(Investment Company Act)`),
}
