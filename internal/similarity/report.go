package similarity

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/schemas"
)

// ReportGroup is one cluster in the analysis report artifact.
type ReportGroup struct {
	GroupID  int              `json:"group_id"`
	Size     int              `json:"size"`
	Requests []listing.Record `json:"requests"`
}

// Report is the analysis run artifact summarizing how the scraped listings
// cluster under the similarity threshold.
type Report struct {
	RunID         string        `json:"run_id"`
	Timestamp     time.Time     `json:"timestamp"`
	Backend       string        `json:"backend"`
	Threshold     float64       `json:"threshold"`
	TotalRequests int           `json:"total_requests"`
	GroupsCount   int           `json:"groups_count"`
	Groups        []ReportGroup `json:"groups"`
}

// BuildReport assembles the report from grouping output. Group IDs are
// assigned in group order starting at 1.
func BuildReport(groups []Group, runID, backend string, threshold float64, now time.Time) Report {
	report := Report{
		RunID:     runID,
		Timestamp: now,
		Backend:   backend,
		Threshold: threshold,
		Groups:    make([]ReportGroup, 0, len(groups)),
	}
	for i, g := range groups {
		report.TotalRequests += len(g.Records)
		report.Groups = append(report.Groups, ReportGroup{
			GroupID:  i + 1,
			Size:     len(g.Records),
			Requests: g.Records,
		})
	}
	report.GroupsCount = len(report.Groups)
	return report
}

// WriteReport marshals the report, checks it against the analysis report
// schema, and writes it to path. A report that fails its own schema is a bug,
// so validation failure aborts the write.
func (r Report) WriteReport(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis report: %w", err)
	}

	if err := schemas.ValidateAnalysisReport(string(data)); err != nil {
		return fmt.Errorf("analysis report failed schema validation: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis report %s: %w", path, err)
	}
	return nil
}
