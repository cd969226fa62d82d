// Package automation replays scripted slider moves through a session.
package automation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/metrics"
	"github.com/san-kum/sirsim/internal/session"
)

// Scenario is a scripted sequence of parameter changes.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep either moves one slider or, with Reset set, returns the
// session to its defaults.
type ScenarioStep struct {
	Param string  `yaml:"param"`
	Value float64 `yaml:"value"`
	Reset bool    `yaml:"reset"`
}

func (s ScenarioStep) String() string {
	if s.Reset {
		return "reset"
	}
	return fmt.Sprintf("%s=%g", s.Param, s.Value)
}

// StepResult is the session state after one step.
type StepResult struct {
	Step    ScenarioStep
	Params  epidemic.Parameters
	Summary metrics.Summary
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	for i, step := range scenario.Steps {
		if step.Reset {
			continue
		}
		if _, err := epidemic.ParseParamID(step.Param); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// RunScenario dispatches every step to sess in order. It stops at the first
// failing step and returns the results gathered so far.
func RunScenario(sess *session.Session, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		var err error
		if step.Reset {
			err = sess.Reset()
		} else {
			var id epidemic.ParamID
			id, err = epidemic.ParseParamID(step.Param)
			if err == nil {
				err = sess.Dispatch(session.ParamChange{ID: id, Value: step.Value})
			}
		}
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}

		results = append(results, StepResult{
			Step:    step,
			Params:  sess.Params(),
			Summary: metrics.Summarize(sess.State()),
		})
	}

	return results, nil
}
