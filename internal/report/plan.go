package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
)

// PlanVersion is bumped whenever the plan file layout changes.
const PlanVersion = 1

// Plan is a saved proposal run. Users edit Proposals[i].Proposed.Name and
// apply the plan with a rename.
type Plan struct {
	Version     int                  `json:"version"`
	Backend     string               `json:"backend"`
	FolderKey   string               `json:"folder_key"`
	Settings    naming.Settings      `json:"settings"`
	GeneratedAt time.Time            `json:"generated_at"`
	Proposals   []processor.Proposal `json:"proposals"`
}

// SavePlan writes the plan as indented JSON.
func SavePlan(path string, plan Plan) error {
	plan.Version = PlanVersion
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// LoadPlan reads a plan file.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	if plan.Version != PlanVersion {
		return Plan{}, fmt.Errorf("plan version %d is not supported", plan.Version)
	}
	if plan.FolderKey == "" {
		return Plan{}, errors.New("plan has no folder")
	}
	return plan, nil
}

// Requests returns the rename requests of the plan, using each proposal's
// current name.
func (p Plan) Requests() []processor.RenameRequest {
	return processor.Requests(p.Proposals)
}

// Edit replaces the proposed name of one source with a manual edit.
func (p *Plan) Edit(sourceID, name string) error {
	for i := range p.Proposals {
		prop := &p.Proposals[i]
		if prop.Video.ID != sourceID {
			continue
		}
		prop.Proposed.Override(name)
		return nil
	}
	return fmt.Errorf("no proposal for %q in plan", sourceID)
}
