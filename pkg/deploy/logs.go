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

package deploy

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodLogs retrieves logs from every pod matching the app selector,
// concatenated with per-pod headers. Used as the diagnostic dump when
// verification fails.
func (d *Deployer) PodLogs(ctx context.Context) (string, error) {
	pods, err := d.clientset.CoreV1().Pods(d.config.Namespace).List(ctx, metav1.ListOptions{
		LabelSelector: d.selector(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pods: %w", err)
	}

	if len(pods.Items) == 0 {
		return "", fmt.Errorf("no pods found for selector %q in namespace %q",
			d.selector(), d.config.Namespace)
	}

	buf := new(bytes.Buffer)
	for _, pod := range pods.Items {
		fmt.Fprintf(buf, "==> %s/%s\n", pod.Namespace, pod.Name)

		req := d.clientset.CoreV1().Pods(d.config.Namespace).
			GetLogs(pod.Name, &corev1.PodLogOptions{})
		logs, err := req.Stream(ctx)
		if err != nil {
			fmt.Fprintf(buf, "<failed to stream logs: %v>\n", err)
			continue
		}

		if _, err := io.Copy(buf, logs); err != nil {
			fmt.Fprintf(buf, "<failed to read logs: %v>\n", err)
		}
		_ = logs.Close()
	}

	return buf.String(), nil
}

// StreamLogs follows logs from the first pod matching the app selector,
// writing each line to w with an optional prefix. Returns when the context
// is canceled or the stream ends.
func (d *Deployer) StreamLogs(ctx context.Context, w io.Writer, prefix string) error {
	pods, err := d.clientset.CoreV1().Pods(d.config.Namespace).List(ctx, metav1.ListOptions{
		LabelSelector: d.selector(),
	})
	if err != nil {
		return fmt.Errorf("failed to list pods: %w", err)
	}

	if len(pods.Items) == 0 {
		return fmt.Errorf("no pods found for selector %q in namespace %q",
			d.selector(), d.config.Namespace)
	}

	pod := pods.Items[0]
	req := d.clientset.CoreV1().Pods(d.config.Namespace).GetLogs(pod.Name, &corev1.PodLogOptions{
		Follow: true,
	})

	logs, err := req.Stream(ctx)
	if err != nil {
		return fmt.Errorf("failed to stream logs: %w", err)
	}
	defer logs.Close()

	scanner := bufio.NewScanner(logs)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if prefix != "" {
				fmt.Fprintf(w, "%s %s\n", prefix, scanner.Text())
			} else {
				fmt.Fprintln(w, scanner.Text())
			}
		}
	}

	return scanner.Err()
}
