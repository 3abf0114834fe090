// Copyright (c) 2026, Atlas Project Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"time"

	"github.com/atlasproject/atlasctl/pkg/health"
)

// Step names as they appear in reports.
const (
	StepPreflight = "preflight"
	StepBuild     = "build"
	StepDeploy    = "deploy"
	StepVerify    = "verify"
)

// StepStatus is the outcome of a single pipeline step.
type StepStatus string

const (
	StatusOK      StepStatus = "ok"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
)

// StepResult records the outcome of one pipeline step.
type StepResult struct {
	Name     string        `json:"name" yaml:"name"`
	Status   StepStatus    `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the full record of a pipeline run, suitable for serialization.
type Report struct {
	RunID     string         `json:"runId" yaml:"runId"`
	StartTime time.Time      `json:"startTime" yaml:"startTime"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	Healthy   bool           `json:"healthy" yaml:"healthy"`
	Steps     []StepResult   `json:"steps" yaml:"steps"`
	Health    *health.Result `json:"health,omitempty" yaml:"health,omitempty"`
	// PodLogs holds pod log output captured when verification fails.
	PodLogs string `json:"podLogs,omitempty" yaml:"podLogs,omitempty"`
}

// Failed returns true if any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

func (r *Report) record(name string, start time.Time, err error) {
	step := StepResult{
		Name:     name,
		Status:   StatusOK,
		Duration: time.Since(start),
	}
	if err != nil {
		step.Status = StatusFailed
		step.Error = err.Error()
	}
	r.Steps = append(r.Steps, step)
}

func (r *Report) skip(name string) {
	r.Steps = append(r.Steps, StepResult{Name: name, Status: StatusSkipped})
}
