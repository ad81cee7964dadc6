package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"guild-tracker/internal/domain"
)

// minItemStringTokens is the fixed positional prefix through the bonus-ID
// count field.
const minItemStringTokens = 13

// ParseItemString decodes the colon-delimited positional encoding exported
// by the game client addon:
//
//	itemID:enchant:gem1:gem2:gem3:gem4:suffix:unique:linkLevel:spec:
//	upgradeID:context:numBonusIDs:bonusID...[:upgradeValue]
//
// The bonus-ID count field determines how many of the following tokens are
// consumed. Empty tokens decode as zero.
func ParseItemString(s string) (*domain.ItemString, error) {
	tokens := strings.Split(strings.TrimSpace(s), ":")
	if len(tokens) < minItemStringTokens {
		return nil, fmt.Errorf("malformed item string: got %d tokens, need at least %d", len(tokens), minItemStringTokens)
	}

	fixed := make([]int, minItemStringTokens)
	for i := 0; i < minItemStringTokens; i++ {
		v, err := parseToken(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("malformed item string token %d: %w", i, err)
		}
		fixed[i] = v
	}

	item := &domain.ItemString{
		ItemID:           fixed[0],
		EnchantID:        fixed[1],
		GemIDs:           [4]int{fixed[2], fixed[3], fixed[4], fixed[5]},
		SuffixID:         fixed[6],
		UniqueID:         fixed[7],
		LinkLevel:        fixed[8],
		SpecializationID: fixed[9],
		UpgradeID:        fixed[10],
		ContextID:        fixed[11],
	}

	numBonusIDs := fixed[12]
	if numBonusIDs < 0 || len(tokens) < minItemStringTokens+numBonusIDs {
		return nil, fmt.Errorf("malformed item string: bonus count %d exceeds remaining tokens", numBonusIDs)
	}

	if numBonusIDs > 0 {
		item.BonusIDs = make([]int, 0, numBonusIDs)
		for i := minItemStringTokens; i < minItemStringTokens+numBonusIDs; i++ {
			v, err := parseToken(tokens[i])
			if err != nil {
				return nil, fmt.Errorf("malformed bonus ID token %d: %w", i, err)
			}
			item.BonusIDs = append(item.BonusIDs, v)
		}
	}

	if rest := tokens[minItemStringTokens+numBonusIDs:]; len(rest) > 0 && rest[0] != "" {
		v, err := parseToken(rest[0])
		if err != nil {
			return nil, fmt.Errorf("malformed upgrade value token: %w", err)
		}
		item.UpgradeValue = &v
	}

	return item, nil
}

func parseToken(t string) (int, error) {
	if t == "" {
		return 0, nil
	}
	return strconv.Atoi(t)
}
