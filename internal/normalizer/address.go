package normalizer

import (
	"regexp"
	"strings"

	"countygraph/internal/models"
	"countygraph/pkg/utils"
)

var (
	stateZipPattern = regexp.MustCompile(`(?i)[,\s]+([A-Z]{2})\s+(\d{5})(?:-\d{4})?$`)
	zipPattern      = regexp.MustCompile(`[,\s]+(\d{5})(?:-\d{4})?$`)
	unitMarkers     = map[string]bool{"UNIT": true, "APT": true, "STE": true, "SUITE": true, "#": true, "LOT": true}
)

// SplitAddress breaks a one-line situs address into its parts. Parts that
// cannot be identified are left nil; the full text is always kept.
func SplitAddress(raw, county string) models.Address {
	full := utils.NormalizeWhitespace(raw)

	addr := models.Address{
		CountyName:          county,
		UnnormalizedAddress: full,
	}

	rest := full

	if m := stateZipPattern.FindStringSubmatchIndex(rest); m != nil {
		addr.StateCode = utils.StringPtr(strings.ToUpper(rest[m[2]:m[3]]))
		addr.PostalCode = utils.StringPtr(rest[m[4]:m[5]])
		rest = rest[:m[0]]
	} else if m := zipPattern.FindStringSubmatchIndex(rest); m != nil {
		addr.PostalCode = utils.StringPtr(rest[m[2]:m[3]])
		rest = rest[:m[0]]
	}

	street, city, unit := splitStreetCity(rest)
	if city != "" {
		addr.CityName = utils.StringPtr(strings.ToUpper(city))
	}

	addr.UnitIdentifier = utils.StringPtr(unit)

	parseStreet(street, &addr)

	return addr
}

// splitStreetCity separates the street line from the city. With commas the
// first part is the street and the last the city; without them the city is
// whatever follows the last street suffix.
func splitStreetCity(s string) (street, city, unit string) {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) > 1 {
		street = parts[0]
		city = parts[len(parts)-1]

		for _, middle := range parts[1 : len(parts)-1] {
			if u := unitValue(strings.Fields(middle)); u != "" {
				unit = u
			}
		}

		return street, city, unit
	}

	tokens := strings.Fields(s)

	for i := len(tokens) - 1; i >= 1; i-- {
		if _, ok := StreetSuffixes[strings.ToUpper(tokens[i])]; !ok || i == len(tokens)-1 {
			continue
		}

		rest := tokens[i+1:]

		switch {
		case len(rest) >= 2 && unitMarkers[strings.ToUpper(rest[0])]:
			unit, rest = rest[1], rest[2:]
		case strings.HasPrefix(rest[0], "#") && len(rest[0]) > 1:
			unit, rest = rest[0][1:], rest[1:]
		}

		return strings.Join(tokens[:i+1], " "), strings.Join(rest, " "), unit
	}

	return s, "", ""
}

func unitValue(tokens []string) string {
	if len(tokens) >= 2 && unitMarkers[strings.ToUpper(tokens[0])] {
		return strings.Join(tokens[1:], " ")
	}

	if len(tokens) == 1 && strings.HasPrefix(tokens[0], "#") && len(tokens[0]) > 1 {
		return tokens[0][1:]
	}

	return ""
}

// parseStreet fills number, pre-directional, name, suffix and unit from a street line.
func parseStreet(street string, addr *models.Address) {
	tokens := strings.Fields(street)

	for i, tok := range tokens {
		if i < len(tokens)-1 && unitMarkers[strings.ToUpper(tok)] {
			addr.UnitIdentifier = utils.StringPtr(strings.Join(tokens[i+1:], " "))
			tokens = tokens[:i]

			break
		}

		if strings.HasPrefix(tok, "#") && len(tok) > 1 {
			addr.UnitIdentifier = utils.StringPtr(strings.Join(append([]string{tok[1:]}, tokens[i+1:]...), " "))
			tokens = tokens[:i]

			break
		}
	}

	if len(tokens) > 0 && tokens[0][0] >= '0' && tokens[0][0] <= '9' {
		addr.StreetNumber = utils.StringPtr(tokens[0])
		tokens = tokens[1:]
	}

	if len(tokens) > 1 && directionals[strings.ToUpper(tokens[0])] {
		addr.StreetPreDirectional = utils.StringPtr(strings.ToUpper(tokens[0]))
		tokens = tokens[1:]
	}

	if len(tokens) > 1 {
		if suffix, ok := StreetSuffixes[strings.ToUpper(tokens[len(tokens)-1])]; ok {
			addr.StreetSuffixType = &suffix
			tokens = tokens[:len(tokens)-1]
		}
	}

	addr.StreetName = utils.StringPtr(strings.ToUpper(strings.Join(tokens, " ")))
}
