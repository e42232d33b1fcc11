package application

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/iocpanel/internal/domain/model"
)

//go:embed statusboard.yaml
var defaultStatusBoard []byte

// StatusBoard holds the static status panel and activity list rendered on the dashboard.
type StatusBoard struct {
	Status   []model.StatusItem
	Activity []model.ActivityItem
}

type statusBoardDoc struct {
	Status []struct {
		Label string `yaml:"label"`
		State string `yaml:"state"`
		Tone  string `yaml:"tone"`
	} `yaml:"status"`
	Activity []struct {
		When string `yaml:"when"`
		Text string `yaml:"text"`
	} `yaml:"activity"`
}

// DefaultStatusBoard parses the status board compiled into the binary.
func DefaultStatusBoard() (StatusBoard, error) {
	return ParseStatusBoard(defaultStatusBoard)
}

// ParseStatusBoard decodes a YAML status board document. Every status entry
// needs a label and a known tone; every activity entry needs text.
func ParseStatusBoard(data []byte) (StatusBoard, error) {
	var doc statusBoardDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return StatusBoard{}, fmt.Errorf("parse status board: %w", err)
	}

	board := StatusBoard{
		Status:   make([]model.StatusItem, 0, len(doc.Status)),
		Activity: make([]model.ActivityItem, 0, len(doc.Activity)),
	}

	for i, s := range doc.Status {
		tone := model.StatusTone(s.Tone)
		if s.Label == "" {
			return StatusBoard{}, fmt.Errorf("status entry %d: missing label", i)
		}
		if !tone.Valid() {
			return StatusBoard{}, fmt.Errorf("status entry %q: unknown tone %q", s.Label, s.Tone)
		}
		board.Status = append(board.Status, model.StatusItem{Label: s.Label, State: s.State, Tone: tone})
	}

	for i, a := range doc.Activity {
		if a.Text == "" {
			return StatusBoard{}, fmt.Errorf("activity entry %d: missing text", i)
		}
		board.Activity = append(board.Activity, model.ActivityItem{When: a.When, Text: a.Text})
	}

	return board, nil
}
