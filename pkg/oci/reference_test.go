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

package oci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/atlasproject/atlasctl/pkg/errors"
)

func TestParseOutputTargetLocalPath(t *testing.T) {
	ref, err := ParseOutputTarget("/tmp/bundle-out")
	require.NoError(t, err)
	assert.False(t, ref.IsOCI)
	assert.Equal(t, "/tmp/bundle-out", ref.LocalPath)
	assert.Equal(t, "/tmp/bundle-out", ref.String())
}

func TestParseOutputTargetOCI(t *testing.T) {
	ref, err := ParseOutputTarget("oci://ghcr.io/atlasproject/atlas-bundle:v1.2.3")
	require.NoError(t, err)
	assert.True(t, ref.IsOCI)
	assert.Equal(t, "ghcr.io", ref.Registry)
	assert.Equal(t, "atlasproject/atlas-bundle", ref.Repository)
	assert.Equal(t, "v1.2.3", ref.Tag)
	assert.Equal(t, "oci://ghcr.io/atlasproject/atlas-bundle:v1.2.3", ref.String())
}

func TestParseOutputTargetOCINoTag(t *testing.T) {
	ref, err := ParseOutputTarget("oci://localhost:5000/atlas-bundle")
	require.NoError(t, err)
	assert.True(t, ref.IsOCI)
	assert.Equal(t, "localhost:5000", ref.Registry)
	assert.Equal(t, "atlas-bundle", ref.Repository)
	assert.Empty(t, ref.Tag)
	assert.Equal(t, "oci://localhost:5000/atlas-bundle", ref.String())
}

func TestParseOutputTargetInvalid(t *testing.T) {
	_, err := ParseOutputTarget("oci://GHCR.IO/Bad Repo::")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestReferenceWithTag(t *testing.T) {
	ref, err := ParseOutputTarget("oci://ghcr.io/atlasproject/atlas-bundle")
	require.NoError(t, err)

	tagged := ref.WithTag("v2.0.0")
	assert.Equal(t, "v2.0.0", tagged.Tag)
	assert.Empty(t, ref.Tag, "original reference must be unchanged")

	local := &Reference{LocalPath: "out"}
	assert.Same(t, local, local.WithTag("v2.0.0"))
}

func TestPushRequiresTag(t *testing.T) {
	_, err := Push(t.Context(), PushOptions{
		SourceDir:  t.TempDir(),
		Registry:   "localhost:5000",
		Repository: "atlas-bundle",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag is required")
}

func TestStripProtocol(t *testing.T) {
	assert.Equal(t, "ghcr.io", stripProtocol("https://ghcr.io"))
	assert.Equal(t, "localhost:5000", stripProtocol("http://localhost:5000"))
	assert.Equal(t, "ghcr.io", stripProtocol("ghcr.io"))
}
