package extract

import (
	"strings"

	"fraudatlas/internal/domain/models"
)

type classifierEntry struct {
	keyword   string
	fraudType models.FraudType
}

// classifierTable maps fraud-language keywords to fraud types.
// Declaration order decides the order of the resulting type list, and
// therefore which type becomes a case's primary classification.
var classifierTable = []classifierEntry{
	{"ponzi", models.FraudTypePonziScheme},
	{"pyramid", models.FraudTypePyramidScheme},
	{"securities fraud", models.FraudTypeSecuritiesFraud},
	{"investment fraud", models.FraudTypeInvestmentFraud},
	{"wire fraud", models.FraudTypeWireFraud},
	{"money laundering", models.FraudTypeMoneyLaundering},
	{"accounting fraud", models.FraudTypeAccountingFraud},
	{"insider trading", models.FraudTypeInsiderTrading},
	{"market manipulation", models.FraudTypeMarketManipulation},
	{"pump", models.FraudTypeMarketManipulation},
	{"shell company", models.FraudTypeShellCompanyFraud},
	{"unregistered", models.FraudTypeUnregisteredSecurities},
	{"offering fraud", models.FraudTypeOfferingFraud},
}

// Classify maps matched fraud-language snippets to an ordered,
// deduplicated list of fraud types. Matching is substring containment
// over the joined, lowercased snippets. An empty or unmatched input
// classifies as Securities Fraud.
func Classify(indicators []string) []models.FraudType {
	text := strings.ToLower(strings.Join(indicators, " "))

	var out []models.FraudType
	for _, e := range classifierTable {
		if !strings.Contains(text, e.keyword) {
			continue
		}
		if containsType(out, e.fraudType) {
			continue
		}
		out = append(out, e.fraudType)
	}

	if len(out) == 0 {
		return []models.FraudType{models.FraudTypeSecuritiesFraud}
	}
	return out
}

func containsType(types []models.FraudType, t models.FraudType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
