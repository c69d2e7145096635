package similarity

import (
	"context"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
)

// Group is a cluster of listings judged similar to the group's opening
// record. Groups are non-empty and together cover every input record exactly
// once.
type Group struct {
	Records []listing.Record
}

// GroupRecords clusters records greedily in input order: each unassigned
// record opens a group, then every later unassigned record whose score
// against the opening record meets the threshold joins it. Membership is
// decided against the opener only, never against other members, so the result
// is order-dependent and not a transitive closure.
func GroupRecords(ctx context.Context, records []listing.Record, scorer Scorer, threshold float64) ([]Group, error) {
	groups := make([]Group, 0)
	assigned := make([]bool, len(records))

	for i, opener := range records {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		group := Group{Records: []listing.Record{opener}}

		openerText := opener.ComparisonText()
		for j := i + 1; j < len(records); j++ {
			if assigned[j] {
				continue
			}
			score, err := scorer.Score(ctx, openerText, records[j].ComparisonText())
			if err != nil {
				return nil, err
			}
			if score >= threshold {
				group.Records = append(group.Records, records[j])
				assigned[j] = true
			}
		}
		groups = append(groups, group)
	}

	return groups, nil
}
