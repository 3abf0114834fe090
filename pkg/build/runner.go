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

package build

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner abstracts external tool invocation (docker, minikube) so the
// build step can be tested without the tools installed.
type CommandRunner interface {
	// Run executes the named tool with args and returns its combined output.
	// The extraEnv entries are appended to the current process environment.
	Run(ctx context.Context, extraEnv []string, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec. The zero value is ready to use.
type ExecRunner struct{}

// Run executes the command, returning combined stdout/stderr. A non-zero
// exit is returned as an error that includes the trailing output for
// diagnosis.
func (ExecRunner) Run(ctx context.Context, extraEnv []string, name string, args ...string) (string, error) {
	slog.Debug("running command", "cmd", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), extraEnv...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return buf.String(), fmt.Errorf("%s %s: %w: %s",
			name, strings.Join(args, " "), err, tail(buf.String(), 2048))
	}

	return buf.String(), nil
}

// tail returns at most n trailing bytes of s, trimmed of whitespace.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
